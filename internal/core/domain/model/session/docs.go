// Package session provides the Session aggregate root: the per-phone
// conversation state the bot engine reads and writes between WhatsApp
// messages.
//
// A session tracks which step of the ordering flow a buyer is on and a small
// key/value bag of in-flight data (selected meal, delivery location, promo
// code). Sessions untouched for longer than their TTL are stale and swept by
// a background job; the next message from that phone starts a fresh flow.
package session
