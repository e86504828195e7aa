package publicfiles

import (
	"path/filepath"
	"strings"
)

const (
	folderIcon  = "📁"
	defaultIcon = "📄"
	folderSize  = "Folder"
	timeLayout  = "Jan 2, 2006 15:04"
)

var allowedExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"pdf": true, "txt": true, "doc": true, "docx": true,
	"zip": true, "mp4": true, "mp3": true, "php": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true,
}

var fileIcons = map[string]string{
	"jpg": "🖼️", "jpeg": "🖼️", "png": "🖼️", "gif": "🖼️",
	"pdf": "📄", "txt": "📝", "doc": "📄", "docx": "📄",
	"zip": "🗜️", "rar": "🗜️",
	"mp4": "🎥", "avi": "🎥", "mov": "🎥",
	"mp3": "🎵", "wav": "🎵",
}

// codeIcons extend fileIcons in the paginated listing only.
var codeIcons = map[string]string{
	"php": "💻", "html": "🌐", "css": "🎨", "js": "⚡",
}

// extensionOf returns the lowercase text after the last dot of name.
func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func isAllowedExtension(ext string) bool {
	return allowedExtensions[strings.ToLower(ext)]
}

func isImage(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

func fileIcon(ext string) string {
	if icon, ok := fileIcons[ext]; ok {
		return icon
	}
	return defaultIcon
}

func detailedFileIcon(ext string) string {
	if icon, ok := codeIcons[ext]; ok {
		return icon
	}
	return fileIcon(ext)
}
