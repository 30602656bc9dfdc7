package shelfbehavior

import "time"

// Settings is the immutable bundle of effective per-call parameters a
// BehaviorTree resolves for one (Kind, Shape, Mode) request.
type Settings struct {
	// Timeouts
	AbandonAfter           time.Duration
	WaitForCall            time.Duration
	WaitForConnect         time.Duration
	WaitForSocketAfterFail time.Duration

	// Retries
	MaxAttempts         int
	DelayBetween        time.Duration
	ResetTTLOnReadAtPct int

	// Placement
	ReplicaOrder []NodeCategory
	ReadModeSC   ReadModeSC
	ReadModeAP   ReadModeAP

	// Batch tuning
	MaxConcurrentServers int
	AllowInlineMemory    bool
	AllowInlineSSD       bool
	RecordQueueSize      int

	// Durability
	SendKey        bool
	UseCompression bool
	DurableDelete  bool

	// Exceptions
	ExceptionPolicy ExceptionPolicy
}

// DefaultSettings is the hard-coded default every field falls back to when
// no level in the parent chain sets it.
func DefaultSettings() Settings {
	return Settings{
		AbandonAfter:           0,
		WaitForCall:            1 * time.Second,
		WaitForConnect:         0,
		WaitForSocketAfterFail: 10 * time.Millisecond,

		MaxAttempts:         2,
		DelayBetween:        0,
		ResetTTLOnReadAtPct: 0,

		ReplicaOrder: []NodeCategory{NodeMaster},
		ReadModeSC:   ReadModeSCSession,
		ReadModeAP:   ReadModeAPOne,

		MaxConcurrentServers: 1,
		AllowInlineMemory:    true,
		AllowInlineSSD:       false,
		RecordQueueSize:      5000,

		SendKey:        false,
		UseCompression: false,
		DurableDelete:  false,

		ExceptionPolicy: ExceptionPolicyReturnAllPossible,
	}
}

// SettingsOverride is a sparse set of optional per-scope overrides: every
// field is a pointer so "unset" is distinguishable from "set to the zero
// value." Composition with a parent/default Settings is by override only.
type SettingsOverride struct {
	AbandonAfter           *time.Duration
	WaitForCall            *time.Duration
	WaitForConnect         *time.Duration
	WaitForSocketAfterFail *time.Duration

	MaxAttempts         *int
	DelayBetween        *time.Duration
	ResetTTLOnReadAtPct *int

	ReplicaOrder []NodeCategory
	ReadModeSC   *ReadModeSC
	ReadModeAP   *ReadModeAP

	MaxConcurrentServers *int
	AllowInlineMemory    *bool
	AllowInlineSSD       *bool
	RecordQueueSize      *int

	SendKey        *bool
	UseCompression *bool
	DurableDelete  *bool

	ExceptionPolicy *ExceptionPolicy
}

// applyTo overlays every set field of o onto base, returning the result.
// base is never mutated.
func (o SettingsOverride) applyTo(base Settings) Settings {
	out := base
	if o.AbandonAfter != nil {
		out.AbandonAfter = *o.AbandonAfter
	}
	if o.WaitForCall != nil {
		out.WaitForCall = *o.WaitForCall
	}
	if o.WaitForConnect != nil {
		out.WaitForConnect = *o.WaitForConnect
	}
	if o.WaitForSocketAfterFail != nil {
		out.WaitForSocketAfterFail = *o.WaitForSocketAfterFail
	}
	if o.MaxAttempts != nil {
		out.MaxAttempts = *o.MaxAttempts
	}
	if o.DelayBetween != nil {
		out.DelayBetween = *o.DelayBetween
	}
	if o.ResetTTLOnReadAtPct != nil {
		out.ResetTTLOnReadAtPct = *o.ResetTTLOnReadAtPct
	}
	if o.ReplicaOrder != nil {
		out.ReplicaOrder = append([]NodeCategory(nil), o.ReplicaOrder...)
	}
	if o.ReadModeSC != nil {
		out.ReadModeSC = *o.ReadModeSC
	}
	if o.ReadModeAP != nil {
		out.ReadModeAP = *o.ReadModeAP
	}
	if o.MaxConcurrentServers != nil {
		out.MaxConcurrentServers = *o.MaxConcurrentServers
	}
	if o.AllowInlineMemory != nil {
		out.AllowInlineMemory = *o.AllowInlineMemory
	}
	if o.AllowInlineSSD != nil {
		out.AllowInlineSSD = *o.AllowInlineSSD
	}
	if o.RecordQueueSize != nil {
		out.RecordQueueSize = *o.RecordQueueSize
	}
	if o.SendKey != nil {
		out.SendKey = *o.SendKey
	}
	if o.UseCompression != nil {
		out.UseCompression = *o.UseCompression
	}
	if o.DurableDelete != nil {
		out.DurableDelete = *o.DurableDelete
	}
	if o.ExceptionPolicy != nil {
		out.ExceptionPolicy = *o.ExceptionPolicy
	}
	return out
}
