package controller

// Feature is a locomotion feature that can be switched on or off and is bound to an input action.
type Feature uint8

const (
	FeatureJump Feature = iota
	FeatureSprint
	FeatureCrouch
	FeatureNoclip

	featureCount
)

// String ...
func (f Feature) String() string {
	switch f {
	case FeatureJump:
		return "jump"
	case FeatureSprint:
		return "sprint"
	case FeatureCrouch:
		return "crouch"
	case FeatureNoclip:
		return "noclip"
	}
	return "unknown"
}

// capability binds a feature to its settings toggle, its action and the code that runs it. tick runs
// once per physics tick while the feature is enabled; press runs on the press edge of the action.
type capability struct {
	enabled bool
	action  string
	// needsAction marks features that do nothing at all without their action registered.
	needsAction bool
	// needsCapsule marks features that change the collider height.
	needsCapsule bool

	tick  func(c *Controller, delta float32)
	press func(c *Controller)
}

func (c *Controller) initCapabilities() {
	s := c.settings
	c.capabilities = [featureCount]capability{
		FeatureJump: {
			enabled: s.Capabilities.Jump,
			action:  s.Actions.Jump,
			tick:    (*Controller).handleJump,
		},
		FeatureSprint: {
			enabled: s.Capabilities.Sprint,
			action:  s.Actions.Sprint,
			tick:    func(c *Controller, _ float32) { c.handleSprint() },
		},
		FeatureCrouch: {
			enabled:     s.Capabilities.Crouch,
			action:       s.Actions.Crouch,
			needsAction:  true,
			needsCapsule: true,
			tick:         (*Controller).handleCrouch,
		},
		FeatureNoclip: {
			enabled:     s.Capabilities.Noclip,
			action:      s.Actions.Noclip,
			needsAction: true,
			press:       (*Controller).toggleNoclip,
		},
	}
}

// Available returns true if the feature is enabled and, when it depends on its action, the action is
// registered with the input system. Crouch also needs a capsule collider.
func (c *Controller) Available(f Feature) bool {
	if f >= featureCount {
		return false
	}
	cp := c.capabilities[f]
	if !cp.enabled || (cp.needsCapsule && !c.capsule) {
		return false
	}
	return !cp.needsAction || c.input.registered(cp.action)
}

// runTick runs the tick handler of the feature if it is available.
func (c *Controller) runTick(f Feature, delta float32) {
	if cp := c.capabilities[f]; cp.tick != nil && c.Available(f) {
		cp.tick(c, delta)
	}
}

// runPress runs the press handler of every available feature whose action was pressed by the event.
func (c *Controller) runPress(ev InputEvent) {
	for f := Feature(0); f < featureCount; f++ {
		cp := c.capabilities[f]
		if cp.press == nil || !c.Available(f) {
			continue
		}
		if isActionPressed(ev, cp.action) {
			cp.press(c)
		}
	}
}
