//
// protocol.go
//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/markkurossi/xtabs/env"
	"github.com/markkurossi/xtabs/ot"
	"github.com/markkurossi/xtabs/p2p"
)

// ErrDesync is returned when the parties are not evaluating the same
// circuit.
var ErrDesync = errors.New("circuit digest mismatch")

const (
	statusOK    = 0
	statusError = 1
)

// Garbler runs the garbler side of the two-party protocol. The inputs
// hold one bit for each garbler input wire. Both parties learn the
// circuit outputs.
func Garbler(cfg *env.Config, conn *p2p.Conn, oti ot.OT, circ *Circuit,
	inputs []bool, timing *Timing) ([]bool, error) {

	if len(inputs) != len(circ.Garbler) {
		return nil, errors.Newf("invalid garbler inputs: got %d, expected %d",
			len(inputs), len(circ.Garbler))
	}
	ioStats := conn.Stats.Snapshot()

	session, err := uuid.NewRandomFromReader(cfg.GetRandom())
	if err != nil {
		return nil, err
	}
	cfg.Debugf(" - session %s: %v\n", session, circ)

	// Handshake.
	sid, _ := session.MarshalBinary()
	if err := conn.SendData(sid); err != nil {
		return nil, err
	}
	if err := conn.SendData(circ.Digest()); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	status, err := conn.ReceiveByte()
	if err != nil {
		return nil, err
	}
	if status != statusOK {
		return nil, errors.Wrapf(ErrDesync, "session %s", session)
	}

	garbled, err := circ.Garble(cfg.GetRandom())
	if err != nil {
		return nil, err
	}
	timing.Sample("Garble", []string{circ.Stats.String()})

	// Garbled tables.
	if err := conn.SendData(garbled.Key); err != nil {
		return nil, err
	}
	if err := conn.SendUint32(len(garbled.Tables)); err != nil {
		return nil, err
	}
	var data ot.LabelData
	for _, l := range garbled.Tables {
		if err := conn.SendLabel(l, &data); err != nil {
			return nil, err
		}
	}

	// Constants and garbler inputs.
	if err := conn.SendLabel(garbled.Wires[Zero].L0, &data); err != nil {
		return nil, err
	}
	if err := conn.SendLabel(garbled.Wires[One].L1, &data); err != nil {
		return nil, err
	}
	for i, w := range circ.Garbler {
		err := conn.SendLabel(garbled.Wires[w].Label(inputs[i]), &data)
		if err != nil {
			return nil, err
		}
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	xfer := conn.Stats.Sub(ioStats)
	timing.Sample("Xfer", []string{FileSize(xfer.Sum()).String()})

	// Evaluator inputs.
	if err := oti.InitSender(conn); err != nil {
		return nil, err
	}
	wires := make([]ot.Wire, len(circ.Evaluator))
	for i, w := range circ.Evaluator {
		wires[i] = garbled.Wires[w]
	}
	if err := oti.Send(wires); err != nil {
		return nil, err
	}
	ioStats = ioStats.Add(xfer)
	xfer = conn.Stats.Sub(ioStats)
	timing.Sample("OT", []string{FileSize(xfer.Sum()).String()})

	// Resolve result.
	labels := make([]ot.Label, len(circ.Outputs))
	for i := range labels {
		if err := conn.ReceiveLabel(&labels[i], &data); err != nil {
			return nil, err
		}
	}
	result, err := garbled.Decode(circ, labels)
	if err != nil {
		return nil, err
	}
	if err := conn.SendData(packBits(result)); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	timing.Sample("Result", nil)

	return result, nil
}

// Evaluator runs the evaluator side of the two-party protocol. The
// inputs hold one bit for each evaluator input wire.
func Evaluator(cfg *env.Config, conn *p2p.Conn, oti ot.OT, circ *Circuit,
	inputs []bool, timing *Timing) ([]bool, error) {

	if len(inputs) != len(circ.Evaluator) {
		return nil, errors.Newf(
			"invalid evaluator inputs: got %d, expected %d",
			len(inputs), len(circ.Evaluator))
	}

	// Handshake.
	sid, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	session, err := uuid.FromBytes(sid)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session ID")
	}
	digest, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	cfg.Debugf(" - session %s: %v\n", session, circ)
	if !bytes.Equal(digest, circ.Digest()) {
		err := conn.SendByte(statusError)
		if err == nil {
			err = conn.Flush()
		}
		if err != nil {
			return nil, errors.Wrapf(ErrDesync, "session %s: status: %v",
				session, err)
		}
		return nil, errors.Wrapf(ErrDesync, "session %s", session)
	}
	if err := conn.SendByte(statusOK); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}

	// Garbled tables.
	key, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	count, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if count != circ.Cost() {
		return nil, errors.Newf("invalid garbled tables: got %d, expected %d",
			count, circ.Cost())
	}
	var data ot.LabelData
	tables := make([]ot.Label, count)
	for i := range tables {
		if err := conn.ReceiveLabel(&tables[i], &data); err != nil {
			return nil, err
		}
	}

	// Constants and garbler inputs.
	wires := make([]ot.Label, circ.NumWires)
	if err := conn.ReceiveLabel(&wires[Zero], &data); err != nil {
		return nil, err
	}
	if err := conn.ReceiveLabel(&wires[One], &data); err != nil {
		return nil, err
	}
	for _, w := range circ.Garbler {
		if err := conn.ReceiveLabel(&wires[w], &data); err != nil {
			return nil, err
		}
	}
	timing.Sample("Recv", []string{FileSize(conn.Stats.Recvd.Load()).String()})

	// Evaluator inputs.
	if err := oti.InitReceiver(conn); err != nil {
		return nil, err
	}
	labels := make([]ot.Label, len(inputs))
	if err := oti.Receive(inputs, labels); err != nil {
		return nil, err
	}
	for i, w := range circ.Evaluator {
		wires[w] = labels[i]
	}
	timing.Sample("OT", nil)

	if err := circ.Eval(key, wires, tables); err != nil {
		return nil, err
	}
	timing.Sample("Eval", []string{circ.Stats.String()})

	// Resolve result.
	for _, w := range circ.Outputs {
		if err := conn.SendLabel(wires[w], &data); err != nil {
			return nil, err
		}
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	packed, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	if len(packed) != (len(circ.Outputs)+7)/8 {
		return nil, errors.Newf("invalid result: got %d bytes, expected %d",
			len(packed), (len(circ.Outputs)+7)/8)
	}
	timing.Sample("Result", nil)

	return unpackBits(packed, len(circ.Outputs)), nil
}

func packBits(bits []bool) []byte {
	result := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			result[i/8] |= 1 << (i % 8)
		}
	}
	return result
}

func unpackBits(data []byte, count int) []bool {
	result := make([]bool, count)
	for i := range result {
		result[i] = data[i/8]&(1<<(i%8)) != 0
	}
	return result
}
