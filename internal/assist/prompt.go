package assist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyRequest is returned when neither a question nor an image is given.
	ErrEmptyRequest = errors.New("please enter a question or upload an image")
	// ErrImageTooLarge is returned when a diagram exceeds the size limit.
	ErrImageTooLarge = errors.New("image too large")
)

// DefaultMaxImageBytes is the diagram size limit used when none is configured.
const DefaultMaxImageBytes = 4 << 20

const defaultDiagramQuestion = "Please analyze this network design and provide configuration commands for all devices shown."

// Image is an inline diagram sent alongside the prompt.
type Image struct {
	Data     []byte
	MIMEType string
}

// Request is one question for the assistant.
type Request struct {
	Topic  Topic
	Vendor Vendor
	Query  string
	Image  *Image
}

// HasImage reports whether a diagram is attached.
func (r Request) HasImage() bool {
	return r.Image != nil && len(r.Image.Data) > 0
}

// Validate rejects requests with nothing to ask and oversized diagrams.
// maxImageBytes <= 0 selects DefaultMaxImageBytes.
func (r Request) Validate(maxImageBytes int) error {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	if strings.TrimSpace(r.Query) == "" && !r.HasImage() {
		return ErrEmptyRequest
	}
	if r.HasImage() && len(r.Image.Data) > maxImageBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrImageTooLarge, len(r.Image.Data), maxImageBytes)
	}
	return nil
}

// BuildPrompt renders the instructor prompt for req.
func BuildPrompt(req Request) string {
	if req.HasImage() {
		return buildDiagramPrompt(req)
	}
	return buildTextPrompt(req)
}

func buildDiagramPrompt(req Request) string {
	question := strings.TrimSpace(req.Query)
	if question == "" {
		question = defaultDiagramQuestion
	}

	var b strings.Builder
	b.WriteString("You are a network engineering expert and instructor. ")
	b.WriteString("A student has uploaded a network topology diagram (likely from Cisco Packet Tracer or similar tool).\n\n")
	fmt.Fprintf(&b, "Topic Category: %s\n", req.Topic.Label)
	fmt.Fprintf(&b, "Preferred Vendor: %s\n", req.Vendor.Label)
	fmt.Fprintf(&b, "Student's Question: %q\n\n", question)
	b.WriteString("IMPORTANT: Carefully analyze the network diagram image provided. Identify:\n")
	b.WriteString("1. All routers, switches, and other network devices\n")
	b.WriteString("2. Interface connections and IP addressing if visible\n")
	b.WriteString("3. Network topology type\n\n")
	b.WriteString("Then provide:\n")
	b.WriteString("1. **Network Analysis**: Describe what you see in the diagram - devices, connections, network segments\n")
	fmt.Fprintf(&b, "2. **Configuration Commands**: Provide complete %s CLI commands for EACH device shown. Include:\n", req.Vendor.Label)
	b.WriteString("   - Hostname configuration\n")
	b.WriteString("   - Interface configurations with IP addresses\n")
	b.WriteString("   - Any routing protocol configuration (like OSPF, EIGRP) if applicable\n")
	b.WriteString("   - Any switching configurations (VLANs, trunks) if applicable\n\n")
	b.WriteString("Format your response with clear sections for EACH device. Use markdown formatting.\n")
	b.WriteString("Use code blocks for CLI commands. Be specific to the topology shown in the image.")
	return b.String()
}

func buildTextPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a network engineering expert and instructor. A student is learning about %s.\n\n", req.Topic.Label)
	fmt.Fprintf(&b, "Their question/topic is: %q\n\n", strings.TrimSpace(req.Query))
	b.WriteString("Please provide:\n")
	b.WriteString("1. **Explanation**: A clear, educational explanation suitable for a networking student\n")
	fmt.Fprintf(&b, "2. **Configuration Example**: Provide practical %s CLI configuration commands with comments\n\n", req.Vendor.Label)
	b.WriteString("Format your response with clear sections. Use markdown formatting.\n")
	b.WriteString("For configuration code, use code blocks with proper syntax.\n")
	b.WriteString("Be thorough but concise. Include best practices and common mistakes to avoid.")
	return b.String()
}
