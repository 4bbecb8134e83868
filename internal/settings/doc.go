// Package settings is the add-on's preference store. Flat fields and the
// nested theme tree are persisted as YAML through a private viper instance;
// every setter writes the file before returning. Setting the log level
// pushes the new threshold to the logging subsystem, and the two
// visibility toggles notify change observers synchronously.
package settings
