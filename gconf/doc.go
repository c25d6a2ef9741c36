/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity stored under its package
name. The configuration is created from the genesis file using InitConfig and
can later be changed by its owner using the UpdateConfigurationHandler.

Not being able to get a configuration value is a critical condition for the
application. Extensions must fail the transaction when the configuration
cannot be loaded.
*/
package gconf
