// Package web embeds the browser page and the files written by init.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static documents
var files embed.FS

// FS returns the embedded templates rooted at the project directory layout.
func FS() fs.FS {
	return files
}

// Dirs are the directories a project contains.
var Dirs = []string{"static", "documents", "data", "uploads"}

// Templates are the files a project contains, in write order.
var Templates = []string{
	"static/index.html",
	"static/style.css",
	"static/app.js",
	"documents/welcome.txt",
	"documents/search-tips.txt",
}
