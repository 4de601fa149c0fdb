package internal

// ClientVersion is the current version string of the client, sent in the User-Agent header.
const ClientVersion = "1.0.0"
