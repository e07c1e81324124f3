// Package feature implements the capability negotiation core of the Helix
// runtime. Subsystem providers register feature nodes (an ID, a list of
// eligibility conditions, and dependencies on other features) during startup;
// a single resolution pass then evaluates the whole set in dependency order
// and publishes an immutable snapshot of per-feature states. Every capability
// query for the lifetime of the process is answered from that snapshot.
//
// # Why a registry instead of three booleans
//
// The public surface of the runtime is tiny (is audio / speech / network
// usable?), but the answer depends on build flags, probed hardware, and other
// features: speech is pointless without a working audio path. Modelling that
// as a dependency-aware graph keeps the provider modules decoupled — they
// register in any order, forward references included — while guaranteeing a
// consistent result: a feature is Enabled only when all of its own conditions
// hold and every dependency resolved Enabled.
//
// # Resolution guarantees
//
//   - Dependencies are evaluated strictly before dependents, in a
//     deterministic order.
//   - A dependency cycle or a reference to an unregistered feature aborts the
//     whole pass; no partial snapshot is ever published and a previously
//     published snapshot stays authoritative.
//   - Queries never fail: before the first successful pass, and for IDs that
//     were never registered, they conservatively report false.
package feature
