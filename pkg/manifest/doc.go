// Package manifest reads provisioning manifests and applies them.
//
// A manifest describes the desired state of one IDE configuration directory
// in TOML or YAML:
//
//	config_dir = ".IntelliJIdea2019.3/config"
//	intellij_home = "/opt/idea"
//	owner = "dev"
//	default_jdk = "11"
//	plugins = ["Docker", "org.jetbrains.kotlin"]
//
//	[[jdks]]
//	name = "11"
//	home = "/usr/lib/jvm/java-11"
//
// Steps run in a fixed order and the first failure stops the run.
package manifest
