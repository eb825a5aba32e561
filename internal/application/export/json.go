package export

import (
	"bytes"
	"encoding/json"

	"github.com/alchemorsel/menugen/internal/domain/menu"
)

// RenderJSON dumps the menu indented by four spaces with slashes and
// HTML characters left unescaped.
func RenderJSON(m *menu.WeeklyMenu) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
