/*
Package gconf provides a toolset for managing an extension configuration.

Each extension may define a configuration object that is stored under a
single, well known key in the database. Configurations are initialized from
the genesis declaration and read by handlers at runtime.
*/
package gconf
