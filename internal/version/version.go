// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Meditation bell, dream journal, JSON Schema export, adaptive quality
// 0.2.0 - Natal chart, compatibility, lunar calendar and rituals
// 0.1.0 - Initial release: galaxy view, camera flights, tarot and horoscope
