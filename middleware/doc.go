// Package middleware adapts the authcore verifier and role gate to
// net/http. Guard handles credential verification; RequireRoles layers the
// role check on top. A route declares which verifier kind and which
// permitted-role set it needs by composing the two.
package middleware
