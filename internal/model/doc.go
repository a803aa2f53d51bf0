// Package model contains the domain records shared by every layer.
// Records carry bson tags for the document store and json tags for the HTTP surface;
// no persistence or transport logic lives here.
package model
