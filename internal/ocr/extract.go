package ocr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ocrResponse models the v3.2 OCR body: regions contain lines, lines
// contain words.
type ocrResponse struct {
	Language string `json:"language"`
	Regions  []struct {
		Lines []struct {
			Words []struct {
				Text string `json:"text"`
			} `json:"words"`
		} `json:"lines"`
	} `json:"regions"`
}

// ExtractText reconstructs readable text from an OCR response body: words
// space-joined per line, lines newline-joined per region. Unknown response
// shapes fall back to a recursive scan for text fields so newer API formats
// still yield something usable.
func ExtractText(body []byte) (string, error) {
	var parsed ocrResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("malformed OCR response: %w", err)
	}

	var lines []string
	for _, region := range parsed.Regions {
		for _, line := range region.Lines {
			var words []string
			for _, w := range line.Words {
				if w.Text != "" {
					words = append(words, w.Text)
				}
			}
			if text := strings.Join(words, " "); strings.TrimSpace(text) != "" {
				lines = append(lines, text)
			}
		}
	}

	if len(lines) == 0 {
		lines = scanTextFields(body)
	}
	return strings.Join(lines, "\n"), nil
}

// scanTextFields recursively collects "text" and "content" string fields
// from an arbitrary JSON document.
func scanTextFields(body []byte) []string {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	var texts []string
	walkTextFields(doc, &texts)
	return texts
}

func walkTextFields(node interface{}, texts *[]string) {
	switch v := node.(type) {
	case map[string]interface{}:
		for _, key := range []string{"text", "content"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				*texts = append(*texts, s)
				return
			}
		}
		for _, child := range v {
			walkTextFields(child, texts)
		}
	case []interface{}:
		for _, child := range v {
			walkTextFields(child, texts)
		}
	}
}
