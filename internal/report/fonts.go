package report

import (
	"os"
	"path/filepath"

	"github.com/01walid/goarabic"
)

// fontCandidates lists common system TTFs able to render Arabic script,
// covering the platforms the app ships on.
var fontCandidates = []string{
	`C:\Windows\Fonts\arial.ttf`,
	`C:\Windows\Fonts\tahoma.ttf`,
	`C:\Windows\Fonts\segoeui.ttf`,
	`C:\Windows\Fonts\times.ttf`,
	`C:\Windows\Fonts\NotoNaskhArabic-Regular.ttf`,
	`C:\Windows\Fonts\NotoSansArabic-Regular.ttf`,
	"/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansArabic-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
}

// findFont returns the first usable candidate font path, falling back to
// any TTF shipped in the assets directory. Empty string means no capable
// font was found and the core font is used instead.
func findFont() string {
	for _, p := range fontCandidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	matches, err := filepath.Glob(filepath.Join("assets", "*.ttf"))
	if err == nil && len(matches) > 0 {
		return matches[0]
	}
	return ""
}

// shape rewrites Arabic text into presentation-form glyphs in visual
// order so the PDF renders it correctly. Non-Arabic text passes through
// unchanged.
func shape(s string) string {
	if !hasArabic(s) {
		return s
	}
	return goarabic.Reverse(goarabic.ToGlyph(s))
}

func hasArabic(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x0600 && r <= 0x06FF,
			r >= 0x0750 && r <= 0x077F,
			r >= 0xFB50 && r <= 0xFDFF,
			r >= 0xFE70 && r <= 0xFEFF:
			return true
		}
	}
	return false
}
