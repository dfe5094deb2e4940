package session

import (
	"github.com/cbdog94/dset/internal/attr"
	"github.com/cbdog94/dset/pkg/dset/data"
)

// Attribute tags. The numeric values are this module's own private
// contract (the header defining the upstream kernel module's tag
// numbering was not available to ground against), grouped the same way
// the original groups its DSET_ATTR_* enum: command-level tags first,
// then the create-time menu, then the add/delete-time menu — each table
// restarts its own tag numbering since a tag is only ever looked up
// against the policy table for its own nesting level.
const (
	tagUnspec attr.Tag = iota
	tagProtocol
	tagSetname
	tagTypename
	tagRevision
	tagRevisionMin
	tagFamily
	tagFlags
	tagData // nested: create-time attribute group
	tagADT  // nested: add/delete-time attribute group
	tagLineno
	tagSetname2
	tagErrcmd
	tagErrcode
)

const (
	tagCreateUnspec attr.Tag = iota
	tagGC
	tagHashsize
	tagMaxelem
	tagProbes
	tagResize
	tagTimeout
	tagCadtFlags
	tagElements
	tagReferences
	tagMemsize
)

const (
	tagADTUnspec attr.Tag = iota
	tagDomain
	tagName
	tagNameref
	tagADTTimeout
	tagADTCadtFlags
	tagBytes
	tagPackets
	tagComment
	tagSkbmark
	tagSkbprio
	tagSkbqueue
	tagLine // per-element line number, restore-mode aggregation
)

// cmdPolicy describes command-level attributes: every public and private
// message's outer envelope.
var cmdPolicy = attr.Policy{
	tagProtocol:    {Type: attr.TypeU8, Opt: data.OptNone},
	tagSetname:     {Type: attr.TypeString, MaxLen: 31, Opt: data.OptSetname},
	tagTypename:    {Type: attr.TypeString, MaxLen: 31, Opt: data.OptTypename},
	tagRevision:    {Type: attr.TypeU8, Opt: data.OptRevision},
	tagRevisionMin: {Type: attr.TypeU8, Opt: data.OptRevisionMin},
	tagFamily:      {Type: attr.TypeU8, Opt: data.OptFamily},
	tagFlags:       {Type: attr.TypeU32, Opt: data.OptFlags},
	tagLineno:      {Type: attr.TypeU32, Opt: data.OptLineno},
	tagSetname2:    {Type: attr.TypeString, MaxLen: 31, Opt: data.OptSetname2},
}

// createPolicy describes the nested DATA group's fields for CREATE and
// the kernel's HEADER reply.
var createPolicy = attr.Policy{
	tagGC:         {Type: attr.TypeU32, Opt: data.OptGC},
	tagHashsize:   {Type: attr.TypeU32, Opt: data.OptHashsize},
	tagMaxelem:    {Type: attr.TypeU32, Opt: data.OptMaxelem},
	tagProbes:     {Type: attr.TypeU8, Opt: data.OptProbes},
	tagResize:     {Type: attr.TypeU8, Opt: data.OptResize},
	tagTimeout:    {Type: attr.TypeU32, Opt: data.OptTimeout},
	tagCadtFlags:  {Type: attr.TypeU32, Opt: data.OptCadtFlags},
	tagElements:   {Type: attr.TypeU32, Opt: data.OptElements},
	tagReferences: {Type: attr.TypeU32, Opt: data.OptReferences},
	tagMemsize:    {Type: attr.TypeU32, Opt: data.OptMemsize},
}

// adtPolicy describes the nested ADT group members' fields for ADD/DEL/
// TEST/LIST rows.
var adtPolicy = attr.Policy{
	tagDomain:       {Type: attr.TypeString, MaxLen: 254, Opt: data.OptDomain},
	tagName:         {Type: attr.TypeString, MaxLen: 31, Opt: data.OptName},
	tagNameref:      {Type: attr.TypeString, MaxLen: 31, Opt: data.OptNameref},
	tagADTTimeout:   {Type: attr.TypeU32, Opt: data.OptTimeout},
	tagADTCadtFlags: {Type: attr.TypeU32, Opt: data.OptCadtFlags},
	tagBytes:        {Type: attr.TypeU64, Opt: data.OptBytes},
	tagPackets:      {Type: attr.TypeU64, Opt: data.OptPackets},
	tagComment:      {Type: attr.TypeString, MaxLen: 255, Opt: data.OptAdtComment},
	tagSkbmark:      {Type: attr.TypeU64, Opt: data.OptSkbmark},
	tagSkbprio:      {Type: attr.TypeU32, Opt: data.OptSkbprio},
	tagSkbqueue:     {Type: attr.TypeU16, Opt: data.OptSkbqueue},
	tagLine:         {Type: attr.TypeU32, Opt: data.OptLineno},
}
