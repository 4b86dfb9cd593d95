package engine

import "testing"

func TestAddPortAndFind(t *testing.T) {
	g := NewGraph()

	idx, err := g.AddPort("out_1", DirectionOutput)
	if err != nil {
		t.Fatalf("AddPort: %v", err)
	}
	if idx != 0 {
		t.Fatalf("AddPort index = %d, want 0", idx)
	}

	found, err := g.FindPort("out_1")
	if err != nil {
		t.Fatalf("FindPort: %v", err)
	}
	if found != idx {
		t.Fatalf("FindPort = %d, want %d", found, idx)
	}
}

func TestAddPortDuplicateName(t *testing.T) {
	g := NewGraph()
	if _, err := g.AddPort("in_1", DirectionInput); err != nil {
		t.Fatalf("AddPort: %v", err)
	}
	if _, err := g.AddPort("in_1", DirectionInput); err == nil {
		t.Fatalf("AddPort with duplicate name succeeded")
	}
}

func TestConnectRequiresOutputToInput(t *testing.T) {
	g := NewGraph()
	out, _ := g.AddPort("out_1", DirectionOutput)
	in, _ := g.AddPort("in_1", DirectionInput)

	if err := g.Connect(out, in); err != nil {
		t.Fatalf("Connect(out, in): %v", err)
	}
	if err := g.Connect(in, out); err == nil {
		t.Fatalf("Connect(in, out) unexpectedly succeeded")
	}
}

func TestConnectRejectsSelfAndDuplicate(t *testing.T) {
	g := NewGraph()
	out, _ := g.AddPort("out_1", DirectionOutput)
	in, _ := g.AddPort("in_1", DirectionInput)

	if err := g.Connect(out, out); err == nil {
		t.Fatalf("self-connection unexpectedly succeeded")
	}
	if err := g.Connect(out, in); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := g.Connect(out, in); err == nil {
		t.Fatalf("duplicate connection unexpectedly succeeded")
	}
}

func TestDisconnect(t *testing.T) {
	g := NewGraph()
	out, _ := g.AddPort("out_1", DirectionOutput)
	in, _ := g.AddPort("in_1", DirectionInput)
	if err := g.Connect(out, in); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := g.Disconnect(out, in); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	p, err := g.Port(out)
	if err != nil {
		t.Fatalf("Port: %v", err)
	}
	if len(p.Connections()) != 0 {
		t.Fatalf("port still has connections after Disconnect: %v", p.Connections())
	}
}

func TestRemovePortClearsConnections(t *testing.T) {
	g := NewGraph()
	out, _ := g.AddPort("out_1", DirectionOutput)
	in, _ := g.AddPort("in_1", DirectionInput)
	if err := g.Connect(out, in); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := g.RemovePort(in); err != nil {
		t.Fatalf("RemovePort: %v", err)
	}
	p, err := g.Port(out)
	if err != nil {
		t.Fatalf("Port: %v", err)
	}
	if len(p.Connections()) != 0 {
		t.Fatalf("source port retained a connection to a removed port: %v", p.Connections())
	}
}

func TestGraphBinaryRoundTrip(t *testing.T) {
	g := NewGraph()
	out, _ := g.AddPort("system:out_1", DirectionOutput)
	in, _ := g.AddPort("system:in_1", DirectionInput)
	if err := g.Connect(out, in); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	encoded, err := g.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(encoded) != GraphLayoutSize {
		t.Fatalf("MarshalBinary length = %d, want %d", len(encoded), GraphLayoutSize)
	}

	var decoded Graph
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded.PortCount() != g.PortCount() {
		t.Fatalf("decoded port count = %d, want %d", decoded.PortCount(), g.PortCount())
	}
	p, err := decoded.Port(out)
	if err != nil {
		t.Fatalf("Port: %v", err)
	}
	if p.Name != "system:out_1" {
		t.Fatalf("decoded port name = %q, want %q", p.Name, "system:out_1")
	}
	if len(p.Connections()) != 1 || p.Connections()[0] != int32(in) {
		t.Fatalf("decoded connections = %v, want [%d]", p.Connections(), in)
	}
}
