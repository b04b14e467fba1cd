package runner

import (
	"HookProbe/internal/shared/constants"
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// DNSRunner resolves the probed host against an explicit resolver so a
// DNS failure can be told apart from the receiver being down.
type DNSRunner struct {
	timeout time.Duration
	server  string
}

func NewDNSRunner(server string) *DNSRunner {
	if server == "" {
		server = "8.8.8.8:53"
	}
	return &DNSRunner{
		timeout: constants.DNSTimeout,
		server:  server,
	}
}

func (r *DNSRunner) Execute(ctx context.Context, target string, options map[string]interface{}) (map[string]interface{}, error) {
	recordType := getStringOption(options, "record_type", "A")
	timeout := getDurationOption(options, "timeout", r.timeout)

	client := &dns.Client{
		Timeout: timeout,
	}

	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(target), recordTypeToDNSType(recordType))
	msg.RecursionDesired = true

	response, rtt, err := client.ExchangeContext(ctx, &msg, r.server)
	if err != nil {
		return nil, fmt.Errorf("DNS query failed: %w", err)
	}

	if response.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("DNS error: %s", dns.RcodeToString[response.Rcode])
	}

	records := make([]string, 0, len(response.Answer))
	addresses := make([]string, 0, len(response.Answer))
	for _, answer := range response.Answer {
		records = append(records, answer.String())
		switch rr := answer.(type) {
		case *dns.A:
			addresses = append(addresses, rr.A.String())
		case *dns.AAAA:
			addresses = append(addresses, rr.AAAA.String())
		}
	}

	if len(addresses) == 0 {
		return nil, fmt.Errorf("DNS returned no %s records for %s", recordType, target)
	}

	result := map[string]interface{}{
		"records":       records,
		"addresses":     addresses,
		"server":        r.server,
		"response_time": rtt.Milliseconds(),
		"answer_count":  len(response.Answer),
		"record_type":   recordType,
	}

	if ttl := extractMinTTL(response.Answer); ttl > 0 {
		result["ttl"] = ttl
	}

	return result, nil
}

func recordTypeToDNSType(recordType string) uint16 {
	switch recordType {
	case "AAAA":
		return dns.TypeAAAA
	default:
		return dns.TypeA
	}
}

func extractMinTTL(answers []dns.RR) uint32 {
	if len(answers) == 0 {
		return 0
	}

	minTTL := answers[0].Header().Ttl
	for _, answer := range answers[1:] {
		if answer.Header().Ttl < minTTL {
			minTTL = answer.Header().Ttl
		}
	}
	return minTTL
}
