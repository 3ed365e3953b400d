package model

// Document is an ordered list of pages plus whatever metadata the renderer
// reported about the source file
type Document struct {
	Metadata Metadata
	Pages    []Page
}

// Metadata contains document-level information
type Metadata struct {
	Title    string
	Creator  string
	Producer string
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Pages: make([]Page, 0),
	}
}

// AddPage appends a page and assigns its 0-indexed position
func (d *Document) AddPage(page Page) {
	page.Index = len(d.Pages)
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by index (0-indexed)
func (d *Document) GetPage(index int) *Page {
	if index < 0 || index >= len(d.Pages) {
		return nil
	}
	return &d.Pages[index]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}
