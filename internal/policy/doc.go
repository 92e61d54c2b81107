// AngelaMos | 2026
// doc.go

// Package policy decides who may act on whom.
//
// Every mutating operation in the service resolves an Actor (the
// authenticated caller's id, role, shift and assigned manager) and a
// target, then asks this package for a decision before touching the
// store. Decisions are pure: no I/O, no clocks, no globals. A nil error
// means allow; a *Denial means deny and carries a reason code and the
// message shown to the caller.
//
// Existence is never decided here. Callers load the target first and
// report a missing one as not-found, so a denial always refers to an
// entity that exists.
//
// # Rules
//
//	user/delete        developer: any; manager: role=user in own shift; user: self
//	user/approve       manager, developer
//	user/promote       developer (user -> manager)
//	user/demote        developer (manager -> user)
//	message/send       user: own manager only; manager: users in own shift; developer: anyone
//	event/create       manager: own shift only; developer: any shift
//	event/apply        user in the event's shift
//	event/delete       developer: any; manager: creator or same shift
//	donation/create    manager, developer
//	donation/delete    developer: any; others: creator only
//
// Authorize dispatches a Request to the matching rule so that route
// code can stay declarative; the per-rule functions are exported for
// callers that already hold typed targets.
package policy
