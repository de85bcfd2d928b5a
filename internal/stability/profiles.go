package stability

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DeviceProfile tunes governor timings for a device-name keyword family.
// Profiles can be overridden from a YAML file so new device brands don't
// require a rebuild.
type DeviceProfile struct {
	Name        string        `yaml:"name"`
	Keywords    []string      `yaml:"keywords"`
	Mode        Mode          `yaml:"mode"`
	DeleteDelay time.Duration `yaml:"delete_delay"`
}

// UnmarshalYAML accepts delete_delay as a Go duration string ("800ms",
// "1.5s").
func (p *DeviceProfile) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name        string   `yaml:"name"`
		Keywords    []string `yaml:"keywords"`
		Mode        string   `yaml:"mode"`
		DeleteDelay string   `yaml:"delete_delay"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.Keywords = raw.Keywords
	p.Mode = Mode(raw.Mode)
	if raw.DeleteDelay != "" {
		d, err := time.ParseDuration(raw.DeleteDelay)
		if err != nil {
			return fmt.Errorf("invalid delete_delay %q: %w", raw.DeleteDelay, err)
		}
		p.DeleteDelay = d
	}
	return nil
}

func (p DeviceProfile) matches(lowerTitle string) bool {
	for _, kw := range p.Keywords {
		if strings.Contains(lowerTitle, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// defaultProfiles mirrors field experience: Xiaomi wearables drop the USB
// link under write pressure, Samsung devices tolerate faster churn.
func defaultProfiles() []DeviceProfile {
	return []DeviceProfile{
		{
			Name:        "xiaomi",
			Keywords:    []string{"xiaomi", "mi band", "redmi"},
			Mode:        ModeStable,
			DeleteDelay: time.Second,
		},
		{
			Name:        "samsung",
			Keywords:    []string{"samsung", "galaxy"},
			DeleteDelay: 300 * time.Millisecond,
		},
		{
			Name:        "android-generic",
			Keywords:    []string{"scrcpy", "android"},
			DeleteDelay: 400 * time.Millisecond,
		},
	}
}

// LoadProfiles replaces the governor's device profiles from a YAML file.
// A missing file leaves the built-in defaults in place.
func (g *Governor) LoadProfiles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read device profiles: %w", err)
	}

	var doc struct {
		Profiles []DeviceProfile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse device profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil
	}

	g.mu.Lock()
	g.profiles = doc.Profiles
	g.mu.Unlock()
	return nil
}
