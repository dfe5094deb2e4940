package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/internal/wire"
	"github.com/cbdog94/dset/pkg/dset/data"
	"github.com/cbdog94/dset/pkg/dset/errcode"
	"github.com/cbdog94/dset/pkg/dset/transport/faketransport"
	"github.com/cbdog94/dset/pkg/dset/types"
)

// newTestSession returns a Session wired to a fresh faketransport. The
// session still owes its lazy protocol handshake on the first Cmd call;
// use queueHandshake to supply its reply.
func newTestSession(t *testing.T) (*Session, *faketransport.Transport) {
	t.Helper()
	ft := faketransport.New()
	require.NoError(t, ft.Init())
	s := New(ft)
	return s, ft
}

// frame assembles one reply message: a generic header plus an attribute
// payload, exactly what transport.Query/Recv hand back to the session.
func frame(t *testing.T, msgType uint16, payload []byte) []byte {
	t.Helper()
	var hdr [wire.HeaderSize]byte
	h := wire.Header{Version: 1, MsgType: msgType}
	require.NoError(t, h.Encode(hdr[:]))
	out := make([]byte, 0, len(hdr)+len(payload))
	out = append(out, hdr[:]...)
	out = append(out, payload...)
	return out
}

func dataFrame(t *testing.T, cmd wire.Command, payload []byte) []byte {
	t.Helper()
	return frame(t, wire.MessageType(cmd), payload)
}

// errFrame builds an ERROR reply embedding the original command and a
// kernel error code, the shape dispatchError expects.
func errFrame(t *testing.T, origCmd wire.Command, code uint32) []byte {
	t.Helper()
	buf := make([]byte, 0, 32)
	enc := attr.NewEncoder(buf, 0)
	require.NoError(t, enc.PutScalar(tagErrcmd, attr.TypeU8, uint64(origCmd)))
	require.NoError(t, enc.PutScalar(tagErrcode, attr.TypeU32, uint64(code)))
	return frame(t, wire.NLMSGError, enc.Bytes())
}

func ackFrame(t *testing.T, origCmd wire.Command) []byte {
	return errFrame(t, origCmd, 0)
}

func doneFrame(t *testing.T) []byte {
	return frame(t, wire.NLMSGDone, nil)
}

// protocolReplyFrame builds the kernel's reply to the CmdProtocol
// handshake, reporting kernelVersion as its supported protocol.
func protocolReplyFrame(t *testing.T, kernelVersion uint8) []byte {
	t.Helper()
	buf := make([]byte, 0, 16)
	enc := attr.NewEncoder(buf, 0)
	require.NoError(t, enc.PutScalar(tagProtocol, attr.TypeU8, uint64(kernelVersion)))
	return dataFrame(t, wire.CmdProtocol, enc.Bytes())
}

func queueHandshake(t *testing.T, ft *faketransport.Transport, kernelVersion uint8) {
	t.Helper()
	ft.QueueReply(protocolReplyFrame(t, kernelVersion))
}

func registerHashDomain(s *Session) *types.Descriptor {
	s.Registry.Add(types.HashDomain)
	return types.HashDomain
}

func TestCheckProtocolMatchingVersion(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)

	require.NoError(t, s.checkProtocol())
	require.Equal(t, NoError, s.ReportType())
	require.True(t, s.versionChecked)
}

func TestCheckProtocolOlderKernelWarnsThenSuppresses(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion-1)

	require.NoError(t, s.checkProtocol())
	require.Equal(t, uint8(protocolVersion-1), s.protocol)
	require.Equal(t, NoError, s.ReportType(), "handshake warning is suppressed unless the caller asked for version explicitly")
}

func TestCheckProtocolRunsOnlyOnce(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)

	require.NoError(t, s.checkProtocol())
	require.NoError(t, s.checkProtocol())
	require.Len(t, ft.Requests, 1)
}

func TestCmdCreateSendsAndCachesOnACK(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdCreate))

	desc := registerHashDomain(s)
	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptTypename, desc.Name)

	require.NoError(t, s.Cmd(wire.CmdCreate, 0))
	require.Equal(t, NoError, s.ReportType())
	require.True(t, s.Names.Exists("blocklist"))

	typeName, ok := s.Names.TypeOf("blocklist")
	require.True(t, ok)
	require.Equal(t, "hash:domain", typeName)

	// the data blob is cleared after a completed public command
	require.False(t, s.Data().Test(data.OptSetname))
}

func TestCmdCreateErrorReportsTranslatedMessage(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(errFrame(t, wire.CmdCreate, uint32(errcode.ErrExist)))

	desc := registerHashDomain(s)
	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptTypename, desc.Name)

	err := s.Cmd(wire.CmdCreate, 0)
	require.Error(t, err)
	require.Equal(t, Error, s.ReportType())
	require.False(t, s.Names.Exists("blocklist"))
}

func TestCmdDestroyDropsCacheEntry(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdCreate))
	ft.QueueReply(ackFrame(t, wire.CmdDestroy))

	desc := registerHashDomain(s)
	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptTypename, desc.Name)
	require.NoError(t, s.Cmd(wire.CmdCreate, 0))

	s.Data().SetString(data.OptSetname, "blocklist")
	require.NoError(t, s.Cmd(wire.CmdDestroy, 0))
	require.False(t, s.Names.Exists("blocklist"))
}

func TestCmdTestMembershipFoundAndNotFound(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdTest))
	ft.QueueReply(errFrame(t, wire.CmdTest, uint32(errcode.ErrExist)))

	desc := registerHashDomain(s)

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "evil.example")
	require.NoError(t, s.Cmd(wire.CmdTest, 0))
	require.Equal(t, Notice, s.ReportType())
	require.Contains(t, s.Report(), "is in set")

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "good.example")
	require.NoError(t, s.Cmd(wire.CmdTest, 0))
	require.Equal(t, Notice, s.ReportType())
	require.Contains(t, s.Report(), "is NOT in set")
}

func TestCmdTestQuietSuppressesReport(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdTest))

	desc := registerHashDomain(s)
	s.EnvSet(EnvQuiet)

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "evil.example")
	require.NoError(t, s.Cmd(wire.CmdTest, 0))
	require.Equal(t, NoError, s.ReportType())
}

// TestCmdAddDelRestoreAggregation exercises restore-mode aggregation: two
// ADD commands on the same set, both with a nonzero line number, must be
// folded into a single buffered message instead of each triggering its
// own commit.
func TestCmdAddDelRestoreAggregation(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdAdd))

	desc := registerHashDomain(s)

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "one.example")
	require.NoError(t, s.Cmd(wire.CmdAdd, 1))
	// the only request sent so far is the implicit protocol handshake;
	// the ADD itself is buffered, not yet committed
	afterFirst := len(ft.Requests)
	require.Equal(t, 1, afterFirst)

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "two.example")
	require.NoError(t, s.Cmd(wire.CmdAdd, 2))
	require.Len(t, ft.Requests, afterFirst, "second ADD on the same set must still be aggregated, not committed")

	// end of restore input / explicit COMMIT forces the flush
	require.NoError(t, s.Commit())
	require.Len(t, ft.Requests, afterFirst+1)
}

// TestCmdAddDelDifferentSetBreaksAggregation verifies a change of target
// set forces an immediate commit of the buffered ADD before starting the
// new one.
func TestCmdAddDelDifferentSetBreaksAggregation(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	ft.QueueReply(ackFrame(t, wire.CmdAdd))
	ft.QueueReply(ackFrame(t, wire.CmdAdd))

	desc := registerHashDomain(s)

	s.Data().SetString(data.OptSetname, "blocklist")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "one.example")
	require.NoError(t, s.Cmd(wire.CmdAdd, 1))
	afterFirst := len(ft.Requests)
	require.Equal(t, 1, afterFirst) // just the handshake so far

	s.Data().SetString(data.OptSetname, "other")
	s.Data().SetAny(data.OptType, desc)
	s.Data().SetString(data.OptDomain, "two.example")
	require.NoError(t, s.Cmd(wire.CmdAdd, 2))
	require.Len(t, ft.Requests, afterFirst+1, "switching setname must flush the previously aggregated ADD")
}

// buildListRowPayload assembles one LIST/SAVE data message carrying a
// SETNAME, a DATA (create-attrs) group and an ADT group wrapping one
// member, matching what handleListRow expects to decode.
func buildListRowPayload(t *testing.T, setname, typeName string, members []string) []byte {
	t.Helper()
	buf := make([]byte, 0, 512)
	enc := attr.NewEncoder(buf, 0)
	require.NoError(t, enc.PutString(tagSetname, setname, 31))
	require.NoError(t, enc.PutString(tagTypename, typeName, 31))
	require.NoError(t, enc.PutScalar(tagFamily, attr.TypeU8, 0))

	require.NoError(t, enc.OpenNested(tagData))
	require.NoError(t, enc.PutScalar(tagHashsize, attr.TypeU32, 1024))
	require.NoError(t, enc.CloseNested())

	require.NoError(t, enc.OpenNested(tagADT))
	for i, domain := range members {
		require.NoError(t, enc.OpenNested(tagMember))
		require.NoError(t, enc.PutString(tagDomain, domain, 254))
		require.NoError(t, enc.PutScalar(tagLine, attr.TypeU32, uint64(i+1)))
		require.NoError(t, enc.CloseNested())
	}
	require.NoError(t, enc.CloseNested())
	return enc.Bytes()
}

func TestListDecodesHeaderAndRows(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	registerHashDomain(s)

	payload := buildListRowPayload(t, "blocklist", "hash:domain", []string{"one.example", "two.example"})
	ft.QueueReply(dataFrame(t, wire.CmdList, payload))
	ft.QueueReply(doneFrame(t))

	var printed []string
	s.SetPrintOutFn(func(str string) { printed = append(printed, str) })

	require.NoError(t, s.Cmd(wire.CmdList, 0))
	require.Equal(t, NoError, s.ReportType())

	joined := ""
	for _, p := range printed {
		joined += p
	}
	require.Contains(t, joined, "Name: blocklist")
	require.Contains(t, joined, "Type: hash:domain")
	require.Contains(t, joined, "one.example")
	require.Contains(t, joined, "two.example")
}

func TestListContinuationRowsAppendToSameSet(t *testing.T) {
	s, ft := newTestSession(t)
	queueHandshake(t, ft, protocolVersion)
	registerHashDomain(s)

	first := buildListRowPayload(t, "blocklist", "hash:domain", []string{"one.example"})
	ft.QueueReply(dataFrame(t, wire.CmdList, first))

	// a continuation row: same setname, ADT-only (no DATA group)
	buf := make([]byte, 0, 256)
	enc := attr.NewEncoder(buf, 0)
	require.NoError(t, enc.PutString(tagSetname, "blocklist", 31))
	require.NoError(t, enc.OpenNested(tagADT))
	require.NoError(t, enc.OpenNested(tagMember))
	require.NoError(t, enc.PutString(tagDomain, "two.example", 254))
	require.NoError(t, enc.CloseNested())
	require.NoError(t, enc.CloseNested())
	ft.QueueReply(dataFrame(t, wire.CmdList, enc.Bytes()))
	ft.QueueReply(doneFrame(t))

	var printed []string
	s.SetPrintOutFn(func(str string) { printed = append(printed, str) })

	require.NoError(t, s.Cmd(wire.CmdList, 0))

	joined := ""
	for _, p := range printed {
		joined += p
	}
	require.Contains(t, joined, "one.example")
	require.Contains(t, joined, "two.example")
	// only one "Name:" header is printed, since the second row continued
	// the first set rather than starting a new one
	count := 0
	for i := 0; i+len("Name:") <= len(joined); i++ {
		if joined[i:i+len("Name:")] == "Name:" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestReportSeverityEscalatesNotDowngrades(t *testing.T) {
	s, _ := newTestSession(t)
	s.Warn("low severity")
	require.Equal(t, Warning, s.ReportType())

	s.Notice("higher severity")
	require.Equal(t, Notice, s.ReportType())
	require.Contains(t, s.Report(), "higher severity")

	// a Warning arriving after a Notice must not downgrade the report
	s.Warn("should not replace the notice")
	require.Equal(t, Notice, s.ReportType())
	require.Contains(t, s.Report(), "higher severity")
}

func TestErrSeverityResetsDataBlob(t *testing.T) {
	s, _ := newTestSession(t)
	s.Data().SetString(data.OptSetname, "blocklist")
	require.True(t, s.Data().Test(data.OptSetname))

	_ = s.Err("boom")
	require.Equal(t, Error, s.ReportType())
	require.False(t, s.Data().Test(data.OptSetname), "an Error report poisons only the in-flight command, so the blob is cleared")
}

func TestErrPrefixesLineNumberInRestoreMode(t *testing.T) {
	s, _ := newTestSession(t)
	s.Lineno(7)
	_ = s.Err("bad token")
	require.Contains(t, s.Report(), "Error in line 7:")
}

func TestEnvOptSetTestUnset(t *testing.T) {
	s, _ := newTestSession(t)
	require.False(t, s.EnvTest(EnvSorted))

	s.EnvSet(EnvSorted)
	require.True(t, s.EnvTest(EnvSorted))
	require.False(t, s.EnvTest(EnvQuiet))

	s.EnvUnset(EnvSorted)
	require.False(t, s.EnvTest(EnvSorted))
}
