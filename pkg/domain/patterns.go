// Package domain scores segments against the 11 closed business-domain
// variants (spec §4.4) using route paths, segment/class names, imported
// symbols, and decorator/annotation payloads.
package domain

import "github.com/themaverik/codebase-workflow-analyzer/pkg/types"

// Pattern is one domain's keyword surface, checked against a segment's
// route path, name, imports, and decorators.
type Pattern struct {
	Domain       types.BusinessDomain
	RouteHints   []string
	NameHints    []string
	ImportHints  []string
	Decorators   []string
}

// Patterns is the closed 11-domain keyword table.
var Patterns = []Pattern{
	{
		Domain:      types.DomainAuthentication,
		RouteHints:  []string{"/auth", "/login", "/logout", "/signin", "/signup", "/token", "/oauth"},
		NameHints:   []string{"auth", "login", "logout", "jwt", "session", "password", "credential"},
		ImportHints: []string{"jsonwebtoken", "passport", "bcrypt", "oauth", "jwt", "django.contrib.auth"},
	},
	{
		Domain:      types.DomainUserManagement,
		RouteHints:  []string{"/users", "/profile", "/account", "/members"},
		NameHints:   []string{"user", "profile", "account", "member"},
		ImportHints: []string{"django.contrib.auth.models"},
	},
	{
		Domain:      types.DomainPaymentProcessing,
		RouteHints:  []string{"/payments", "/checkout", "/billing", "/invoice", "/subscription"},
		NameHints:   []string{"payment", "invoice", "billing", "charge", "subscription", "refund"},
		ImportHints: []string{"stripe", "paypal", "braintree", "square"},
	},
	{
		Domain:      types.DomainECommerce,
		RouteHints:  []string{"/cart", "/products", "/orders", "/catalog", "/inventory"},
		NameHints:   []string{"cart", "product", "order", "catalog", "inventory", "sku"},
	},
	{
		Domain:      types.DomainContentManagement,
		RouteHints:  []string{"/posts", "/articles", "/pages", "/media", "/cms"},
		NameHints:   []string{"post", "article", "page", "content", "cms", "blog"},
	},
	{
		Domain:      types.DomainNotification,
		RouteHints:  []string{"/notifications", "/alerts"},
		NameHints:   []string{"notification", "alert", "push", "email", "sms"},
		ImportHints: []string{"twilio", "sendgrid", "nodemailer", "firebase-admin/messaging"},
	},
	{
		Domain:      types.DomainAnalytics,
		RouteHints:  []string{"/analytics", "/metrics", "/events"},
		NameHints:   []string{"analytics", "metric", "event", "tracking", "telemetry"},
		ImportHints: []string{"segment", "mixpanel", "amplitude", "google-analytics"},
	},
	{
		Domain:      types.DomainCommunication,
		RouteHints:  []string{"/messages", "/chat", "/threads"},
		NameHints:   []string{"message", "chat", "thread", "conversation"},
		ImportHints: []string{"socket.io", "websocket", "pusher"},
	},
	{
		Domain:      types.DomainDataPipeline,
		RouteHints:  []string{"/ingest", "/etl", "/pipeline"},
		NameHints:   []string{"pipeline", "ingest", "etl", "transform", "batch", "stream"},
		ImportHints: []string{"kafka", "airflow", "dagster", "luigi", "pandas"},
	},
	{
		Domain:      types.DomainAPIGateway,
		RouteHints:  []string{"/gateway", "/proxy", "/route"},
		NameHints:   []string{"gateway", "proxy", "router", "middleware", "rate-limit"},
	},
	{
		Domain:      types.DomainReporting,
		RouteHints:  []string{"/reports", "/dashboard", "/export"},
		NameHints:   []string{"report", "dashboard", "export", "summary"},
	},
}

// ReportThreshold is the minimum confidence at which a domain is emitted at
// all (spec §4.4, "multi-domain policy": every domain clearing 0.40 is
// emitted, there is no forced single winner).
const ReportThreshold = 0.40
