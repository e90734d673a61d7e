// Package sections holds the concrete navigation sections of the app.
//
// Each sub-package declares its screens, its presentability table and how it
// reacts to navigation intents and app lifecycle events. The generic state
// machine lives in package router; a section is only data plus two small
// mapping functions.
//
// Every section owns a locked Security screen. It is entered when the app
// resigns active and left only through a cross-fade back to the section root.
package sections
