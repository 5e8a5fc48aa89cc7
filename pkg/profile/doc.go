// Package profile assembles the atomic multi-part profile update from
// edit-form state: plain text fields, JSON-encoded badge visibility and
// notification preferences, and an optional image attachment.
//
// Build enforces the password rules before any network activity: password
// fields are included only when BOTH the current and the new password are
// non-blank; a new password without the current one fails with
// ValidationError("Enter current password"); a new password shorter than 8
// characters fails with the length message.
//
//	update, err := profile.Mutation{
//		FirstName: "Jane",
//		LastName:  "Doe",
//		Badges:    []profile.BadgeVisibility{{BadgeID: 7, IsPublic: false}},
//	}.Build()
//
// The resulting apiclient.ProfileUpdate is submitted with
// Client.UpdateProfile.
package profile
