// Package notify mails the diff set of a reconciliation run.
//
// The mailer is a pure consumer: it renders the diffs it is handed,
// sorted for display by (type, location, price), and sends one HTML
// message over SMTP. It never touches the store.
package notify
