package mqtt

import (
	"net/url"
	"strings"

	"github.com/nerrad567/knxlink/internal/knx"
)

// Topic segments under the configured prefix.
//
// The hierarchy is:
//
//	{prefix}/result/{url-encoded group address}   one message per request
//	{prefix}/status/{client id}                   online/offline
const (
	segmentResult = "result"
	segmentStatus = "status"
)

// Topics builds knxlink MQTT topics under a common prefix.
//
//	topics := mqtt.NewTopics("knxlink")
//	ga, _ := knx.ParseGroupAddress("1/2/3")
//	topics.Result(ga) // "knxlink/result/1%2F2%2F3"
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Trailing slashes are dropped.
func NewTopics(prefix string) Topics {
	return Topics{prefix: strings.TrimRight(prefix, "/")}
}

// Result returns the topic for the outcome of a request to ga.
// The address is path-escaped because "/" separates topic levels.
//
// Example: knxlink/result/1%2F2%2F3
func (t Topics) Result(ga knx.GroupAddress) string {
	return t.join(segmentResult, ga.URLEncode())
}

// AllResults returns the wildcard matching every result topic.
//
// Example: knxlink/result/#
func (t Topics) AllResults() string {
	return t.join(segmentResult, "#")
}

// Status returns the online/offline status topic of clientID.
//
// Example: knxlink/status/knxlink-1a2b3c4d
func (t Topics) Status(clientID string) string {
	return t.join(segmentStatus, clientID)
}

// GroupAddressFromResult extracts the unescaped group address from a result
// topic. It reports false for topics outside this prefix's result tree.
func (t Topics) GroupAddressFromResult(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, t.join(segmentResult, ""))
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	ga, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return ga, true
}

func (t Topics) join(segments ...string) string {
	return t.prefix + "/" + strings.Join(segments, "/")
}
