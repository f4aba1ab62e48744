// Package contact handles contact form submissions.
//
// A Submission is parsed from form values and normalized; Service.Submit
// then applies the anti-abuse and validation policy in a fixed order:
//
//  1. honeypot: a filled "website" field is dropped silently
//  2. per-address sliding-window rate limit (the attempt is recorded
//     before validation, so invalid attempts count)
//  3. validation, every violation reported in one French message
//  4. dispatch through a Notifier, guarded by a process-wide throttle
//
// Submissions are never stored. When no mail transport is configured the
// Notifier is a no-op and the caller still sees a success.
package contact
