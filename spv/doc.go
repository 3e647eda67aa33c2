/*
Package spv hosts a light client for a proof-of-work source chain as a fully
serialized state machine. Callers relay source-chain headers into it and pay
to ask whether transactions or state entries are included in the canonical
chain it maintains.

# Header admission

SubmitHeader accepts a header when the relay fee is covered and the header is
structurally valid, unseen, attached to a known parent at exactly the next
height, with a fingerprint meeting the difficulty threshold. The relay fee is
burned, never paid out. Admission is all or nothing: the header, its fee
recipient, any canonical rebinding and the new best height are committed in
one store batch.

# Canonical chain

The bridge tracks one best chain by height. A header extending the best
height becomes the new tip and the index rebinds backwards from it until it
reaches an ancestor that is already canonical, so bindings at and below the
fork point stay untouched. Shorter branches are stored and queryable but
leave the index alone; the first header admitted at a height keeps it until a
strictly longer chain takes over.

# Verification

VerifyTransaction and VerifyState answer whether a claim is included in the
source chain at a minimum confirmation depth, consulting an injected Merkle
proof oracle against the transaction root or storage root of the referenced
header. Verdicts are paid for: a true verdict pays the verify fee to the
header's recorded submitter, a false verdict burns it from the caller. Only
malformed input aborts without charge.

All value movement goes through the injected Bank capability and all
persistence through the injected Store, so the package itself holds no global
state.
*/
package spv
