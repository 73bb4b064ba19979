package model

// TrackedApp is an immutable catalog entry for an application whose
// foreground time can be tracked.
type TrackedApp struct {
	ID          string `json:"id"`           // stable short identifier, e.g. "youtube"
	Package     string `json:"package"`      // platform package identifier
	DisplayName string `json:"display_name"` // human-readable name
	Category    string `json:"category"`     // e.g. "video", "social"
	Color       string `json:"color"`        // hex color for UI consumers
}

// MaxSelectedApps is the maximum number of apps that can be tracked at once.
const MaxSelectedApps = 3

// catalog is the static table of trackable apps. It is configuration data,
// not runtime state; the user selects up to MaxSelectedApps entries from it.
var catalog = []TrackedApp{
	{ID: "webtoon", Package: "com.nhn.android.webtoon", DisplayName: "Naver Webtoon", Category: "comics", Color: "#00D564"},
	{ID: "instagram", Package: "com.instagram.android", DisplayName: "Instagram", Category: "social", Color: "#E1306C"},
	{ID: "youtube", Package: "com.google.android.youtube", DisplayName: "YouTube", Category: "video", Color: "#FF0000"},
	{ID: "tiktok", Package: "com.zhiliaoapp.musically", DisplayName: "TikTok", Category: "video", Color: "#69C9D0"},
	{ID: "x", Package: "com.twitter.android", DisplayName: "X", Category: "social", Color: "#14171A"},
	{ID: "reddit", Package: "com.reddit.frontpage", DisplayName: "Reddit", Category: "social", Color: "#FF4500"},
}

// Catalog returns the full list of trackable apps.
func Catalog() []TrackedApp {
	out := make([]TrackedApp, len(catalog))
	copy(out, catalog)
	return out
}

// AppByID looks up a catalog entry by its identifier.
func AppByID(id string) (TrackedApp, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return TrackedApp{}, false
}

// AppByPackage looks up a catalog entry by its platform package identifier.
func AppByPackage(pkg string) (TrackedApp, bool) {
	for _, a := range catalog {
		if a.Package == pkg {
			return a, true
		}
	}
	return TrackedApp{}, false
}

// DefaultSelection returns the default set of tracked app IDs.
func DefaultSelection() []string {
	return []string{"webtoon", "instagram", "youtube"}
}

// AppsByIDs resolves a list of IDs against the catalog, dropping unknown
// entries. Order follows the input list.
func AppsByIDs(ids []string) []TrackedApp {
	var out []TrackedApp
	for _, id := range ids {
		if a, ok := AppByID(id); ok {
			out = append(out, a)
		}
	}
	return out
}
