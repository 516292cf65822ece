// Package userlist holds the user directory view's local state: the list of
// users as last seen from the directory, and which modal is open over it.
//
// Remote completions are applied against the current contents, so an update
// for a user deleted in the meantime is a no-op rather than a resurrection.
package userlist
