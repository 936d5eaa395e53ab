package reading

import (
	"encoding/json"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/smarttext"
)

// importKeys flag texts produced by file import pipelines, whose blank-line
// paragraphs are already reliable.
var importKeys = []string{"pdf_import", "epub_import"}

type importMeta struct {
	SourceEngine string `json:"source_engine"`
}

// importedFrom returns the import metadata when scaffolding marks the text as
// a file import. The flag is either a JSON object or true.
func importedFrom(scaffolding json.RawMessage) (importMeta, bool) {
	if len(scaffolding) == 0 {
		return importMeta{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(scaffolding, &obj); err != nil {
		return importMeta{}, false
	}
	for _, key := range importKeys {
		raw, ok := obj[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if string(raw) == "true" {
			return importMeta{}, true
		}
		var meta importMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}
		return meta, true
	}
	return importMeta{}, false
}

// segmentText splits content into paragraphs and sentences with a global
// sentence index. A paragraph that yields no sentence is kept whole.
func segmentText(content string, scaffolding json.RawMessage) []domain.NewSentence {
	meta, imported := importedFrom(scaffolding)

	var paragraphs []string
	if imported {
		paragraphs = smarttext.SplitBlankLineParagraphs(content)
	} else {
		paragraphs = smarttext.SegmentParagraphs(content)
	}
	if len(paragraphs) == 0 {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			paragraphs = []string{trimmed}
		}
	}

	var out []domain.NewSentence
	for p, paragraph := range paragraphs {
		sentences, engine := smarttext.SegmentWith(paragraph, smarttext.EngineUAX29)
		if len(sentences) == 0 {
			sentences = []string{paragraph}
		}
		source := engine.String()
		if meta.SourceEngine != "" {
			source = meta.SourceEngine
		}
		for i, s := range sentences {
			out = append(out, domain.NewSentence{
				SentenceIndex:       len(out),
				ParagraphIndex:      p,
				SentenceInParagraph: i,
				Content:             s,
				SourceEngine:        source,
			})
		}
	}
	return out
}
