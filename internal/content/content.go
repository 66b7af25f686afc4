// Package content holds the static advisory text that accompanies posture
// feedback. Nothing here depends on request input.
package content

var maintenanceTips = []string{
	"Take brief breaks every 30 mins to stretch/move.",
	"Ensure feet flat, knees ~90°, back supported.",
	"Keep elbows near 90° while typing, close to body.",
	"Monitor top roughly at eye level, arm's length away.",
	"Use lumbar support for spine's natural curve.",
}

const benefits = "Good posture reduces pain (back, neck, shoulders), improves breathing & focus, and prevents long-term spinal issues."

var deskSetupTips = []string{
	"**Monitor:** Top edge at/below eye level, arm's length away.",
	"**Chair:** Feet flat (use footrest if needed), knees ~level with hips, proper back support.",
	"**Keyboard/Mouse:** Close to body, elbows ~90°, straight wrists.",
	"**Desk Height:** Adjust chair first, then desk for parallel forearms.",
	"**Lighting:** Avoid screen glare; use task lighting if needed.",
	"**Breaks:** Stand, stretch, walk around every 30-60 mins.",
	"**Accessories:** Consider document holder, headset for calls.",
}

// MaintenanceTips returns the general posture-habit tips. Callers get a copy
// so shared state never leaks across requests.
func MaintenanceTips() []string {
	tips := make([]string, len(maintenanceTips))
	copy(tips, maintenanceTips)
	return tips
}

// Benefits returns the good-posture benefits blurb.
func Benefits() string {
	return benefits
}

// DeskSetupTips returns the ergonomic desk setup checklist.
func DeskSetupTips() []string {
	tips := make([]string, len(deskSetupTips))
	copy(tips, deskSetupTips)
	return tips
}
