// Package screen implements the data models behind each screen of the badge
// viewer: home, the badge catalog, the individual badge detail view, the
// profile view and the profile editor. Each model is a viewstate.Reconciler
// instantiation plus the derived state that screen renders (owned-badge
// ordering, avatar initials, default selection, earner counts).
//
// Models hold no rendering concerns; any front end reads their State and
// calls their actions. Navigation signals (the unauthorized redirect,
// logout) are injected callbacks.
package screen
