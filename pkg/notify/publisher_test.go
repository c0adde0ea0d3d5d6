package notify

import "testing"

func TestNilPublisherIsInert(t *testing.T) {
	var p *Publisher

	if p.IsConnected() {
		t.Error("nil publisher reports connected")
	}
	if err := p.Publish(KeyReportScheduled, ReportEvent{}); err != nil {
		t.Errorf("Publish on nil publisher = %v, want nil", err)
	}
	p.Close()
}

func TestUnconnectedPublisherReportsDisconnected(t *testing.T) {
	p := &Publisher{}

	if p.IsConnected() {
		t.Error("publisher without a connection reports connected")
	}
	p.Close()
}
