package splunk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Metadata carries the HEC event envelope fields stamped onto every
 * forwarded event. Defaults identify the traffic as relayed webhooks;
 * deployments can override them with a small YAML file
 */
type Metadata struct {
	Host       string `yaml:"host"`
	Source     string `yaml:"source"`
	Sourcetype string `yaml:"sourcetype"`
	Index      string `yaml:"index"`
}

// DefaultMetadata returns the standard relay event labels
func DefaultMetadata() Metadata {
	return Metadata{
		Host:       "stream-webhook-forwarder",
		Source:     "stream-chat-webhook",
		Sourcetype: "_json",
	}
}

// LoadMetadata reads a YAML override file, filling any omitted field from
// the defaults
func LoadMetadata(filePath string) (Metadata, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading metadata file: %w", err)
	}

	meta := DefaultMetadata()
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parsing metadata YAML: %w", err)
	}

	if err := meta.Validate(); err != nil {
		return Metadata{}, err
	}

	return meta, nil
}

// Validate checks that required event labels are present
func (m Metadata) Validate() error {
	if m.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if m.Source == "" {
		return fmt.Errorf("source cannot be empty")
	}
	if m.Sourcetype == "" {
		return fmt.Errorf("sourcetype cannot be empty")
	}
	return nil
}
