package download

import (
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// languageMarkers holds per-language character and keyword tables used by the
// metadata heuristic. Characters should be ones rarely seen outside the
// language; words are matched with surrounding spaces to avoid substrings.
var languageMarkers = map[string]struct {
	chars []rune
	words []string
}{
	"hu": {
		chars: []rune{'ő', 'ű'},
		words: []string{"és", "vagy", "nem", "igen", "hogy", "magyar", "magyarország", "köszönöm"},
	},
}

// IsLivestream reports whether the video looks like a live or premiere
// broadcast. The native client exposes no live flag, so the gate relies on
// the duration: live and upcoming content reports none. Best-effort only.
func IsLivestream(video *youtube.Video) bool {
	return video.Duration == 0
}

// IsTargetLanguage classifies a video as target-language content from its
// metadata: marker characters or keywords in title, description, or channel
// name, or a caption track in the language. The reason string explains the
// verdict. Heuristic with no precision guarantee; used only as a
// pre-download gate.
func IsTargetLanguage(video *youtube.Video, lang string) (bool, string) {
	lang = strings.ToLower(strings.TrimSpace(lang))

	title := strings.ToLower(video.Title)
	description := strings.ToLower(video.Description)
	channel := strings.ToLower(video.Author)

	if markers, ok := languageMarkers[lang]; ok {
		for _, ch := range markers.chars {
			if strings.ContainsRune(title, ch) || strings.ContainsRune(description, ch) {
				return true, fmt.Sprintf("found marker character %q in title/description", ch)
			}
		}
		for _, w := range markers.words {
			if containsWord(title, w) || containsWord(description, w) {
				return true, fmt.Sprintf("found marker word %q in title/description", w)
			}
		}
		for _, ch := range markers.chars {
			if strings.ContainsRune(channel, ch) {
				return true, "channel name indicates target language"
			}
		}
		for _, w := range markers.words {
			if containsWord(channel, w) {
				return true, "channel name indicates target language"
			}
		}
	}

	for _, track := range video.CaptionTracks {
		if captionLangMatches(track.LanguageCode, lang) {
			return true, fmt.Sprintf("has %s captions", lang)
		}
	}

	return false, fmt.Sprintf("no %s indicators found", lang)
}

func containsWord(haystack, word string) bool {
	return strings.Contains(" "+haystack+" ", " "+word+" ")
}

// captionLangMatches treats regional variants ("en-US") as their base code.
func captionLangMatches(trackCode, lang string) bool {
	code := strings.ToLower(strings.TrimSpace(trackCode))
	return code == lang || strings.HasPrefix(code, lang+"-")
}
