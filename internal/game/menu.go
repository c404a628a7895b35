package game

// menu is the difficulty picker shown before the first round and behind
// the outcome panel.
type menu struct {
	names    []string
	selected int
}

func newMenu(names []string, initial string) menu {
	m := menu{names: names}
	m.selectName(initial)
	return m
}

func (m *menu) up()   { m.selected = (m.selected - 1 + len(m.names)) % len(m.names) }
func (m *menu) down() { m.selected = (m.selected + 1) % len(m.names) }

// choose selects entry i and reports whether it exists.
func (m *menu) choose(i int) bool {
	if i < 0 || i >= len(m.names) {
		return false
	}
	m.selected = i
	return true
}

func (m *menu) selectName(name string) {
	for i, n := range m.names {
		if n == name {
			m.selected = i
			return
		}
	}
}

func (m menu) current() string { return m.names[m.selected] }
