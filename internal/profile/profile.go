package profile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_profile.yaml
var defaultProfile []byte

type Skill struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
	Level    int    `yaml:"level" json:"level"`
}

type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	ImageURL    string   `yaml:"image_url" json:"imageUrl,omitempty"`
	Link        string   `yaml:"link" json:"link,omitempty"`
	GitHub      string   `yaml:"github" json:"github,omitempty"`
	Featured    bool     `yaml:"featured" json:"featured"`
}

type Assistant struct {
	Name         string   `yaml:"name" json:"name"`
	Greeting     string   `yaml:"greeting" json:"greeting"`
	QuickReplies []string `yaml:"quick_replies" json:"quickReplies"`
}

type Site struct {
	BaseURL string `yaml:"base_url" json:"baseUrl"`
}

// Profile is the static portfolio content the assistant persona and the
// site routes are built from.
type Profile struct {
	Name      string    `yaml:"name" json:"name"`
	Owner     string    `yaml:"owner" json:"owner"`
	Role      string    `yaml:"role" json:"role"`
	Location  string    `yaml:"location" json:"location"`
	Email     string    `yaml:"email" json:"email"`
	Identity  string    `yaml:"identity" json:"identity"`
	About     string    `yaml:"about" json:"about"`
	Skills    []Skill   `yaml:"skills" json:"skills"`
	Projects  []Project `yaml:"projects" json:"projects"`
	Assistant Assistant `yaml:"assistant" json:"assistant"`
	Site      Site      `yaml:"site" json:"site"`
}

// Load reads the profile at path, or the embedded default when path is empty.
func Load(path string) (*Profile, error) {
	data := defaultProfile
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		data = raw
	}

	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile yaml: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	return p, nil
}

func Default() *Profile {
	p, err := Load("")
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if p.Owner == "" {
		p.Owner = strings.Fields(p.Name)[0]
	}
	if p.Assistant.Name == "" {
		p.Assistant.Name = p.Owner + "-AI"
	}
	if p.Assistant.Greeting == "" {
		p.Assistant.Greeting = fmt.Sprintf("Hi, I'm %s. Ask me anything about %s's work.", p.Assistant.Name, p.Owner)
	}
	p.Site.BaseURL = strings.TrimSuffix(p.Site.BaseURL, "/")
	return nil
}

func (p *Profile) SkillNames() []string {
	names := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		names[i] = s.Name
	}
	return names
}

func (p *Profile) ProjectTitles() []string {
	titles := make([]string, len(p.Projects))
	for i, pr := range p.Projects {
		titles[i] = pr.Title
	}
	return titles
}
