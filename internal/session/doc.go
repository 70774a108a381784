// Package session groups the session entity (domain) and the Director that
// drives a playthrough (service).
package session
