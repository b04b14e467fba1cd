package runner

import (
	"HookProbe/internal/probe/domain"
	"fmt"
)

type Factory struct {
	dnsRunner Runner
	tcpRunner Runner
}

func NewFactory(dns Runner, tcp Runner) *Factory {
	return &Factory{
		dnsRunner: dns,
		tcpRunner: tcp,
	}
}

func (f *Factory) GetRunner(checkType domain.CheckType) (Runner, error) {
	switch checkType {
	case domain.DNSCheck:
		if f.dnsRunner != nil {
			return f.dnsRunner, nil
		}
	case domain.TCPCheck:
		if f.tcpRunner != nil {
			return f.tcpRunner, nil
		}
	}
	return nil, fmt.Errorf("unknown check type: %s", checkType)
}
