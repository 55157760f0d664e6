package config

import (
	"bytes"
	"fmt"
	"strings"
)

// GenerateTemplate returns a commented configuration file populated with the
// default values.
func GenerateTemplate() []byte {
	defaults := NewConfig()

	var buf bytes.Buffer
	buf.WriteString("# exarch configuration\n")
	buf.WriteString("# Values given here are overridden by EXARCH_* variables and flags.\n\n")

	section(&buf, "Address the Gemini server listens on.")
	fmt.Fprintf(&buf, "host: %s\n", defaults.Host)
	fmt.Fprintf(&buf, "port: %d\n\n", defaults.Port)

	section(&buf, "Directory of Markdown documents to serve.")
	buf.WriteString("root: .\n\n")

	section(&buf, "PEM certificate and private key.")
	buf.WriteString("tls:\n  cert: cert.pem\n  key: key.pem\n\n")

	section(&buf, "Deadline for one connection, from handshake to last byte.")
	fmt.Fprintf(&buf, "timeout: %s\n\n", defaults.Timeout)

	section(&buf, "Concurrent connection cap; 0 is unlimited.")
	buf.WriteString("max_connections: 0\n\n")

	section(&buf, "Send 5x/4x status lines for failed requests instead of closing silently.")
	buf.WriteString("failure_status: true\n\n")

	section(&buf, "Files tried, in order, when a request names a directory.")
	buf.WriteString("index_files:\n")
	for _, name := range defaults.IndexFiles {
		fmt.Fprintf(&buf, "  - %s\n", name)
	}
	buf.WriteString("\n")

	section(&buf, "Prometheus endpoint, e.g. 127.0.0.1:9465. Empty disables it.")
	buf.WriteString("metrics_addr: \"\"\n\n")

	section(&buf, "One of debug, info, warn, error.")
	fmt.Fprintf(&buf, "log_level: %s\n\n", defaults.LogLevel)

	section(&buf, "Static conversion with `exarch build`.")
	buf.WriteString("build:\n  output: public\n  jobs: 0\n  ignore: []\n")

	return buf.Bytes()
}

func section(buf *bytes.Buffer, comment string) {
	buf.WriteString("# " + strings.TrimSpace(comment) + "\n")
}
