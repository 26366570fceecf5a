package pose

// SurfaceRole names a presentation surface taken over during a session.
type SurfaceRole int

const (
	RoleRoot SurfaceRole = iota
	RoleContent
	RoleToolbar
	RoleBar
	RoleCanvasHolder
	RoleRender
)

// StyleProperty is one style assignment applied during takeover.
type StyleProperty struct {
	Name  string
	Value string
}

// Surfaces is the set of presentation surfaces the controller restyles. Nil surfaces
// are skipped. Bars may hold any number of secondary bars.
type Surfaces struct {
	Root         Surface
	Content      Surface
	Toolbar      Surface
	Bars         []Surface
	CanvasHolder Surface
	Render       Surface
}

type roleSurface struct {
	role    SurfaceRole
	surface Surface
}

// ordered returns the surfaces in takeover order with nil entries dropped.
func (s Surfaces) ordered() []roleSurface {
	out := make([]roleSurface, 0, 5+len(s.Bars))
	add := func(role SurfaceRole, surface Surface) {
		if surface != nil {
			out = append(out, roleSurface{role: role, surface: surface})
		}
	}
	add(RoleRoot, s.Root)
	add(RoleContent, s.Content)
	add(RoleToolbar, s.Toolbar)
	for _, bar := range s.Bars {
		add(RoleBar, bar)
	}
	add(RoleCanvasHolder, s.CanvasHolder)
	add(RoleRender, s.Render)
	return out
}

// defaultTakeover is the full-screen styling applied per role.
func defaultTakeover() map[SurfaceRole][]StyleProperty {
	fill := []StyleProperty{
		{"position", "fixed"},
		{"inset", "0"},
		{"width", "100vw"},
		{"height", "100dvh"},
		{"margin", "0"},
		{"padding", "0"},
		{"overflow", "hidden"},
	}
	return map[SurfaceRole][]StyleProperty{
		RoleRoot: append(append([]StyleProperty(nil), fill...),
			StyleProperty{"z-index", "2147483000"},
			StyleProperty{"background", "#000"},
		),
		RoleContent: append(append([]StyleProperty(nil), fill...),
			StyleProperty{"max-width", "none"},
		),
		RoleToolbar: {
			{"display", "none"},
		},
		RoleBar: {
			{"display", "none"},
		},
		RoleCanvasHolder: {
			{"position", "absolute"},
			{"inset", "0"},
			{"width", "100%"},
			{"height", "100%"},
			{"margin", "0"},
			{"border-radius", "0"},
		},
		RoleRender: {
			{"display", "block"},
			{"width", "100%"},
			{"height", "100%"},
			{"touch-action", "none"},
		},
	}
}

type propSnapshot struct {
	name    string
	value   string
	present bool
}

type styleSnapshot struct {
	target Surface
	props  []propSnapshot
}

// styleStack records reversible style mutations. Restore pops snapshots in reverse
// push order and, within a snapshot, reverts properties in reverse apply order, so
// a surface captured more than once ends up with its original values.
type styleStack struct {
	snapshots []styleSnapshot
}

// apply records the previous value of each property on target, then applies props.
func (st *styleStack) apply(target Surface, props []StyleProperty) {
	snap := styleSnapshot{target: target, props: make([]propSnapshot, 0, len(props))}
	for _, p := range props {
		prev, ok := target.Style(p.Name)
		snap.props = append(snap.props, propSnapshot{name: p.Name, value: prev, present: ok})
		target.SetStyle(p.Name, p.Value)
	}
	st.snapshots = append(st.snapshots, snap)
}

// restore pops every snapshot and reverts it.
func (st *styleStack) restore() {
	for len(st.snapshots) > 0 {
		last := len(st.snapshots) - 1
		snap := st.snapshots[last]
		st.snapshots = st.snapshots[:last]
		for i := len(snap.props) - 1; i >= 0; i-- {
			p := snap.props[i]
			if p.present {
				snap.target.SetStyle(p.name, p.value)
			} else {
				snap.target.RemoveStyle(p.name)
			}
		}
	}
}

func (st *styleStack) depth() int {
	return len(st.snapshots)
}
