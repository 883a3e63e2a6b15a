package schema

// FileReference describes one uploaded spreadsheet file. Created once at
// upload time and immutable afterwards; the model addresses the file by its
// Filepath. This system never deletes uploads; lifecycle is managed
// externally.
//
// JSON keys stay camelCase for compatibility with the browser client.
type FileReference struct {
	OriginalName string `json:"originalName"`
	Filename     string `json:"filename"`
	Filepath     string `json:"filepath"`
	Size         int64  `json:"size"`
}
