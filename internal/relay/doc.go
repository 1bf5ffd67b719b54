// Package relay renders the web-debit navigate page.
//
// A request carries a candidate BillingSubmission (AcquireSubmission), which is
// checked for the three required fields (Validate), escaped (SanitizeSubmission)
// and spliced into the page template as a hidden form that posts to the external
// gateway (Render).
//
// Merchant secrets are held in MerchantCredentials, built once from server
// configuration. They are written only as attribute values of the hidden form;
// the confirmation script added to the page reads the required billing fields
// back from the DOM and has no access to any secret through script-visible data.
//
// Nothing in this package keeps state between requests. Render and Validate are
// pure functions and can be tested without a server.
package relay
