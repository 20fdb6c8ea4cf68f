package workbench

// Canned inputs mirroring a typical laptop procurement run. Served as plain
// text so operators can paste them into the first and fifth stages.

const SampleBusinessRequirements = `TransGlobal Industries needs to procure 100 high-performance laptops for the engineering department with the following business requirements:
1. The laptops must support complex CAD software and engineering applications
2. They should have sufficient battery life for day-long use
3. They must be compatible with our existing network infrastructure
4. The procurement must be completed within the next 8 weeks
5. The budget is approximately $120,000 for the entire purchase
6. We require a minimum 3-year warranty with onsite support`

const SampleBids = `Bid 1: Tech Solutions Ltd.
Technical Proposal:
Processor: Intel Core i7 (11th Gen)
RAM: 16GB DDR4
Storage: 512GB SSD
Financial Proposal:
Unit Price: $1,200 per laptop
Total Cost: $125,000

Bid 2: Apex Computers
Technical Proposal:
Processor: AMD Ryzen 7 (5000 series)
RAM: 16GB DDR4
Storage: 1TB SSD
Financial Proposal:
Unit Price: $1,150 per laptop
Total Cost: $119,000

Bid 3: Digital Edge
Technical Proposal:
Processor: AMD Ryzen 7 (4000 series)
RAM: 16GB DDR4
Storage: 512GB SSD
Financial Proposal:
Unit Price: $1,100 per laptop
Total Cost: $114,500`
