package object

import (
	"bytes"
	"strings"
)

// parseHeaderBlock decodes the shared commit/tag layout: ordered "key value"
// header lines up to the first blank line, then a free-text message.
// Continuation lines (leading space, used by gpgsig headers) fold into the
// preceding header's value.
func parseHeaderBlock(payload []byte) ([]HeaderLine, string, error) {
	header := payload
	message := ""
	if idx := bytes.Index(payload, []byte("\n\n")); idx >= 0 {
		header = payload[:idx]
		message = string(payload[idx+2:])
	}

	var headers []HeaderLine
	for _, line := range strings.Split(string(header), "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' {
			if len(headers) == 0 {
				return nil, "", decodeErrf(0, "header block: continuation line with no preceding header")
			}
			headers[len(headers)-1].Value += "\n" + line[1:]
			continue
		}
		key, val, ok := cutSpace(line)
		if !ok {
			return nil, "", decodeErrf(0, "header block: malformed line %q", line)
		}
		headers = append(headers, HeaderLine{Key: key, Value: val})
	}
	return headers, message, nil
}
