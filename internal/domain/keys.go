package domain

// KeyPrefix namespaces every key reviewdex writes to the document store.
const KeyPrefix = "reviewdex:"
