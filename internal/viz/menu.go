package viz

import (
	"strings"

	"github.com/san-kum/orrery/internal/scene"
)

// menu lists the pickable objects so they can be inspected without a
// mouse.
type menu struct {
	names  []string
	cursor int
}

func newMenu(sc *scene.Scene) *menu {
	m := &menu{}
	for _, n := range sc.Interactive() {
		if n.Info != nil {
			m.names = append(m.names, n.Info.Name)
		}
	}
	return m
}

// key handles one key press. done is true once the menu should close;
// name is the chosen entry or empty when cancelled.
func (m *menu) key(k string) (name string, done bool) {
	switch k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.names) == 0 {
			return "", true
		}
		return m.names[m.cursor], true
	case "esc", "b", "q":
		return "", true
	}
	return "", false
}

func (m *menu) view(st styles) string {
	var b strings.Builder
	for i, name := range m.names {
		if i == m.cursor {
			b.WriteString(st.active.Render("> "+name) + "\n")
		} else {
			b.WriteString("  " + st.value.Render(name) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
