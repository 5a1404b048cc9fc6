// Package sample provides the documents seeded into an empty knowledge base.
package sample

import "github.com/fwojciec/localmind"

// Documents returns fresh copies of the built-in sample documents.
func Documents() []*localmind.Document {
	return []*localmind.Document{
		{
			ID:      "sample1",
			Title:   "Construction Safety Guidelines",
			Content: safetyGuidelines,
			Type:    localmind.DocumentTypeText,
			Metadata: map[string]any{
				"type":     "safety",
				"category": "guidelines",
				"date":     "2024-01-15",
			},
		},
		{
			ID:      "sample2",
			Title:   "Concrete Specifications",
			Content: concreteSpecifications,
			Type:    localmind.DocumentTypeText,
			Metadata: map[string]any{
				"type":     "specification",
				"category": "concrete",
				"date":     "2024-02-20",
			},
		},
		{
			ID:      "sample3",
			Title:   "Electrical System Layout",
			Content: electricalLayout,
			Type:    localmind.DocumentTypeText,
			Metadata: map[string]any{
				"type":     "drawing",
				"category": "electrical",
				"building": "A",
				"date":     "2024-03-10",
			},
		},
	}
}

const safetyGuidelines = `Construction Safety Guidelines

1. Personal Protective Equipment (PPE)
All workers must wear appropriate PPE including hard hats, safety glasses,
and steel-toed boots. High-visibility vests are required in all active work areas.

2. Fall Protection
Fall protection is required when working at heights above 6 feet.
Use guardrails, safety nets, or personal fall arrest systems.

3. Electrical Safety
Lock out/tag out procedures must be followed. Only qualified electricians
should work on electrical systems. Ground fault circuit interrupters (GFCI)
required for all temporary power.

4. Excavation Safety
Trenches deeper than 5 feet require protective systems. Daily inspections
by competent person required. Keep heavy equipment away from trench edges.`

const concreteSpecifications = `Concrete Mix Design Specifications

Standard Structural Concrete:
- Minimum compressive strength: 3000 PSI at 28 days
- Maximum water-cement ratio: 0.50
- Minimum cement content: 520 lbs/cubic yard
- Air entrainment: 5-7% for exterior exposure

High-Strength Concrete:
- Compressive strength: 5000-8000 PSI
- Water-cement ratio: 0.35-0.40
- Include silica fume or fly ash for improved strength
- Curing: Maintain moisture for minimum 7 days

Testing Requirements:
- Slump test for each truck
- Compression test cylinders: 1 set per 50 cubic yards
- Test at 7 and 28 days`

const electricalLayout = `Building A - Electrical Distribution System

Main Electrical Room (MER):
- Location: Ground floor, Grid A-1
- Main switchboard: 2000A, 480V, 3-phase
- Emergency generator: 500kW diesel backup
- UPS system: 100kVA for critical loads

Distribution:
Floor 1: Panel LP-1A (Grid B-2) - 225A for lighting
        Panel PP-1A (Grid C-3) - 400A for power
Floor 2: Panel LP-2A (Grid B-2) - 225A for lighting
        Panel PP-2A (Grid C-3) - 400A for power

Emergency Systems:
- Exit lighting on emergency circuits
- Fire alarm system on dedicated circuit with battery backup
- Elevator power with automatic transfer switch`
