// Package containerizer installs the container runtime the platform runs
// on.
//
// The Kestrel installer delegates all service management to Docker, so a
// host without it cannot proceed. Installation follows the vendor's own
// convenience script (the get.docker.com flow): fetch the script over
// HTTPS and pipe it to sh with the pinned VERSION exported. The whole
// step is skipped when the runtime binary is already resolvable on PATH.
package containerizer
