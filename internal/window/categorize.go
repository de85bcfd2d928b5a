package window

import "strings"

// Category classifies a window by the kind of device or tool it mirrors.
type Category string

const (
	CategoryPhone    Category = "phone"
	CategoryTablet   Category = "tablet"
	CategoryWearable Category = "wearable"
	CategoryEmulator Category = "emulator"
	CategoryDevTool  Category = "dev_tool"
	CategoryBrowser  Category = "browser"
	CategoryUnknown  Category = "unknown"
)

// Keyword families per category. First matching category wins; order of
// categories is fixed: phone > tablet > wearable > emulator > dev_tool >
// browser.
var (
	phoneKeywords = []string{
		"phone", "sm-", "iphone", "pixel", "oneplus", "xiaomi", "redmi",
		"huawei", "honor", "oppo", "vivo", "realme", "xperia", "moto",
		"galaxy", "nokia", "zenfone",
	}
	tabletKeywords = []string{
		"tablet", "ipad", "tab s", "surface", "kindle", "fire tablet", "mi pad",
	}
	wearableKeywords = []string{
		"watch", "band", "fitbit", "garmin", "amazfit", "zepp", "huami",
		"wear os", "airpods", "buds",
	}
	emulatorKeywords = []string{
		"emulator", "bluestacks", "nox", "memu", "ldplayer", "gameloop",
		"smartgaga", "mumu",
	}
	devToolKeywords = []string{
		"scrcpy", "adb", "vysor", "android studio", "usb debugging", "mirroring",
	}
	browserKeywords = []string{
		"chrome", "firefox", "edge", "safari", "opera", "brave",
	}
)

// Categorize assigns a device category by case-insensitive substring match
// against the window title.
func Categorize(title string) Category {
	lower := strings.ToLower(title)

	ordered := []struct {
		category Category
		keywords []string
	}{
		{CategoryPhone, phoneKeywords},
		{CategoryTablet, tabletKeywords},
		{CategoryWearable, wearableKeywords},
		{CategoryEmulator, emulatorKeywords},
		{CategoryDevTool, devToolKeywords},
		{CategoryBrowser, browserKeywords},
	}

	for _, group := range ordered {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}

// DeviceKeywords returns every keyword used for device discovery, useful for
// highlighting likely capture targets in the front-ends.
func DeviceKeywords() []string {
	var all []string
	for _, group := range [][]string{
		phoneKeywords, tabletKeywords, wearableKeywords,
		emulatorKeywords, devToolKeywords,
	} {
		all = append(all, group...)
	}
	return all
}

// IsLikelyDevice reports whether the title matches any device keyword family
// other than browser.
func IsLikelyDevice(title string) bool {
	c := Categorize(title)
	return c != CategoryUnknown && c != CategoryBrowser
}
