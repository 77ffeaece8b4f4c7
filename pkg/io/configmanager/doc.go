// Package configmanager loads the certstack configuration.
//
// Sources are layered as defaults < certstack.yaml < CERTSTACK_* environment
// variables < command-line flags. The config file is searched in the working
// directory and in $HOME/.config/certstack unless a path is set explicitly.
package configmanager
