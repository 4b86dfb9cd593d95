package engine

import (
	"encoding/binary"
	"fmt"
)

// Fixed-size binary layout for Graph: magic, fixed offsets,
// little-endian, buffer-size validation. Used by Inspector to push
// tear-free snapshots into a diagnostics ring buffer and by anyone
// embedding the array-state primitive in a shared-memory region.
var graphMagic = [4]byte{'R', 'G', 'P', 'H'}

const (
	portNameSize    = 32
	portRecordSize  = portNameSize + 1 /*direction*/ + 1 /*active*/ + 1 /*connCount*/ + MaxConnections*4
	graphHeaderSize = 4 /*magic*/ + 2 /*portCount*/
	// GraphLayoutSize is the fixed byte size of a marshaled Graph,
	// independent of how many ports are actually live — matching
	// spec.md §6's "k cells packed back-to-back" persisted layout,
	// scaled down to one cell's internal port records.
	GraphLayoutSize = graphHeaderSize + MaxPorts*portRecordSize
)

var (
	errBadGraphMagic   = fmt.Errorf("engine: graph layout: bad magic")
	errGraphBufferSize = fmt.Errorf("engine: graph layout: buffer wrong size")
)

// MarshalBinary encodes g into its fixed-size wire layout.
func (g *Graph) MarshalBinary() ([]byte, error) {
	buf := make([]byte, GraphLayoutSize)
	copy(buf[0:4], graphMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], uint16(g.portCount))

	for i := 0; i < MaxPorts; i++ {
		off := graphHeaderSize + i*portRecordSize
		p := &g.ports[i]

		nameBytes := []byte(p.Name)
		if len(nameBytes) > portNameSize {
			nameBytes = nameBytes[:portNameSize]
		}
		copy(buf[off:off+portNameSize], nameBytes)
		buf[off+portNameSize] = byte(p.Direction)
		if p.Active {
			buf[off+portNameSize+1] = 1
		}
		buf[off+portNameSize+2] = p.connCount
		connOff := off + portNameSize + 3
		for c := 0; c < MaxConnections; c++ {
			binary.LittleEndian.PutUint32(buf[connOff+c*4:connOff+c*4+4], uint32(int32(p.connections[c])))
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes buf into g, replacing its contents entirely.
func (g *Graph) UnmarshalBinary(buf []byte) error {
	if len(buf) != GraphLayoutSize {
		return errGraphBufferSize
	}
	if string(buf[0:4]) != string(graphMagic[:]) {
		return errBadGraphMagic
	}
	g.portCount = int(binary.LittleEndian.Uint16(buf[4:6]))

	for i := 0; i < MaxPorts; i++ {
		off := graphHeaderSize + i*portRecordSize
		p := &g.ports[i]

		end := off + portNameSize
		for end > off && buf[end-1] == 0 {
			end--
		}
		p.Name = string(buf[off:end])
		p.Direction = Direction(buf[off+portNameSize])
		p.Active = buf[off+portNameSize+1] != 0
		p.connCount = buf[off+portNameSize+2]
		connOff := off + portNameSize + 3
		for c := 0; c < MaxConnections; c++ {
			p.connections[c] = int32(binary.LittleEndian.Uint32(buf[connOff+c*4 : connOff+c*4+4]))
		}
	}
	return nil
}
