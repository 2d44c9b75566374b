// Package config loads planner configuration from YAML files and the
// environment using viper and godotenv, following a defaults → file →
// env override order.
package config
