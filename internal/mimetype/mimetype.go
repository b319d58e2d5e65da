// Package mimetype guesses a MIME type from a file extension using a fixed
// table. Unlike mime.TypeByExtension it never consults the host's
// mime.types files, so the same extension yields the same answer on every
// machine.
package mimetype

import "strings"

var byExtension = map[string]string{
	// text
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".conf": "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".htm":  "text/html",
	".html": "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".mjs":  "text/javascript",
	".xml":  "text/xml",
	".ics":  "text/calendar",
	".vcf":  "text/vcard",
	".py":   "text/x-python",
	".c":    "text/x-c",
	".h":    "text/x-c",
	".go":   "text/x-go",
	".sh":   "application/x-sh",

	// structured data
	".json":  "application/json",
	".yaml":  "application/yaml",
	".yml":   "application/yaml",
	".toml":  "application/toml",
	".wasm":  "application/wasm",
	".pdf":   "application/pdf",
	".rtf":   "application/rtf",
	".ps":    "application/postscript",
	".eps":   "application/postscript",
	".bin":   "application/octet-stream",
	".exe":   "application/octet-stream",
	".so":    "application/octet-stream",

	".db":     "application/vnd.sqlite3",
	".sqlite": "application/vnd.sqlite3",

	// office
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".epub": "application/epub+zip",

	// archives and compression
	".zip": "application/zip",
	".tar": "application/x-tar",
	".gz":  "application/gzip",
	".tgz": "application/gzip",
	".bz2": "application/x-bzip2",
	".xz":  "application/x-xz",
	".zst": "application/zstd",
	".7z":  "application/x-7z-compressed",
	".rar": "application/vnd.rar",
	".deb": "application/vnd.debian.binary-package",
	".rpm": "application/x-rpm",
	".jar": "application/java-archive",
	".iso": "application/x-iso9660-image",

	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/vnd.microsoft.icon",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".heic": "image/heic",
	".avif": "image/avif",

	// audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/x-wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".opus": "audio/opus",

	// video
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",

	// fonts
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// ByExtension returns the MIME type registered for ext (including the
// leading dot). Matching is case-insensitive. Unknown or empty extensions
// return ok == false.
func ByExtension(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}
	if t, ok := byExtension[ext]; ok {
		return t, true
	}
	t, ok := byExtension[strings.ToLower(ext)]
	return t, ok
}
