package source

import (
	"testing"
)

func TestForFileDispatch(t *testing.T) {
	supported := []string{
		"book.json", "book.pdf", "notes.md", "notes.markdown",
		"page.html", "page.htm", "report.docx", "data.csv",
		"plain.txt", "UPPER.PDF",
	}
	for _, filename := range supported {
		src, err := ForFile(filename)
		if err != nil {
			t.Errorf("%s: %v", filename, err)
			continue
		}
		if src == nil {
			t.Errorf("%s: nil source", filename)
		}
	}
}

func TestForFileUnsupported(t *testing.T) {
	for _, filename := range []string{"slides.pptx", "archive.zip", "noextension"} {
		if _, err := ForFile(filename); err == nil {
			t.Errorf("%s: want error", filename)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("book.PDF") {
		t.Error("uppercase extension rejected")
	}
	if IsSupportedExtension("slides.pptx") {
		t.Error("pptx accepted")
	}
}

func TestHeadingSize(t *testing.T) {
	if headingSize(1) <= headingSize(2) || headingSize(2) <= headingSize(3) {
		t.Error("heading sizes not strictly decreasing by level")
	}
	if headingSize(4) >= headingSize(3) {
		t.Error("h4 should render below h3")
	}
	if headingSize(6) <= sizeBody {
		t.Error("deep headings should still sit above body size")
	}
}
