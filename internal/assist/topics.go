// Package assist answers networking questions through the Gemini API,
// optionally grounded on an uploaded topology diagram.
package assist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTopic  = errors.New("unknown topic")
	ErrUnknownVendor = errors.New("unknown vendor")
)

// Topic is a networking subject area.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Vendor is the CLI dialect configuration examples are written for.
type Vendor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var topics = []Topic{
	{ID: "general", Label: "General Networking", Icon: "🌐"},
	{ID: "switching", Label: "Switching (VLAN, STP, EtherChannel)", Icon: "🔀"},
	{ID: "routing", Label: "Routing (OSPF, EIGRP, BGP, Static)", Icon: "🛣️"},
	{ID: "security", Label: "Security (ACL, Firewall, VPN)", Icon: "🔒"},
	{ID: "wireless", Label: "Wireless (WiFi, WLC)", Icon: "📶"},
	{ID: "wan", Label: "WAN Technologies", Icon: "🌍"},
	{ID: "ipv6", Label: "IPv6", Icon: "6️⃣"},
	{ID: "automation", Label: "Network Automation", Icon: "🤖"},
}

var vendors = []Vendor{
	{ID: "cisco", Label: "Cisco IOS"},
	{ID: "juniper", Label: "Juniper"},
	{ID: "mikrotik", Label: "MikroTik"},
	{ID: "huawei", Label: "Huawei"},
}

// Topics returns the topic list in menu order.
func Topics() []Topic { return append([]Topic(nil), topics...) }

// Vendors returns the vendor list in menu order.
func Vendors() []Vendor { return append([]Vendor(nil), vendors...) }

// LookupTopic finds a topic by id. A blank id selects "general".
func LookupTopic(id string) (Topic, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return topics[0], nil
	}
	for _, t := range topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%w %q", ErrUnknownTopic, id)
}

// LookupVendor finds a vendor by id. A blank id selects "cisco".
func LookupVendor(id string) (Vendor, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return vendors[0], nil
	}
	for _, v := range vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return Vendor{}, fmt.Errorf("%w %q", ErrUnknownVendor, id)
}
