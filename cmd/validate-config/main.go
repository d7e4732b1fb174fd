package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/stream-relay/config"
	"github.com/marcelsud/stream-relay/relay/splunk"
)

/* validate-config - Standalone CLI tool to validate relay configuration
 * Loads the environment (plus .env if present) and the optional HEC metadata
 * file, exactly as cmd/api and cmd/worker would at startup
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	meta := splunk.DefaultMetadata()
	if cfg.HECMetadataFile != "" {
		meta, err = splunk.LoadMetadata(cfg.HECMetadataFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("VALIDATION PASSED\n\n")
	fmt.Printf("Port:                 %s\n", cfg.Port)
	fmt.Printf("Stream API secret:    %s\n", mask(cfg.StreamAPISecret))
	fmt.Printf("Splunk HEC URL:       %s\n", cfg.SplunkHECURL)
	fmt.Printf("Splunk HEC token:     %s\n", mask(cfg.SplunkHECToken))
	fmt.Printf("Redis:                %s/%d\n", cfg.RedisAddr(), cfg.RedisDB)
	fmt.Printf("Queue name:           %s\n", cfg.WebhookQueueName)
	fmt.Printf("Dedup window:         %s\n", cfg.DedupWindow())
	fmt.Printf("Requeue on failure:   %t\n", cfg.RequeueOnFailure)
	fmt.Printf("HEC event metadata:   host=%s source=%s sourcetype=%s\n",
		meta.Host, meta.Source, meta.Sourcetype)
}

// mask hides a secret but confirms it is set
func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-2:]
}
